package marketplace

import (
	"hash/fnv"
	"strings"

	"listing-feed-service/internal/core/domain"
)

// toDomainListing maps one raw upstream record into the canonical shape.
// Pure transform: every inconsistency the backend has accumulated is handled
// here so nothing above the adapter ever sees a raw field name.
func toDomainListing(raw rawRecord) domain.Listing {
	l := domain.Listing{
		ID:           raw.firstString("id", "_id", "propertyId", "property_id"),
		Title:        raw.firstString("title", "property_title", "subject"),
		Description:  raw.firstString("description", "property_description", "body"),
		PropertyType: raw.firstString("propertyType", "property_type", "category"),
		OfferingType: domain.NormalizeOfferingType(raw.firstString("offeringType", "offering_type", "property_for", "listing_type", "type")),
		Price:        resolvePrice(raw),
		Address:      resolveAddress(raw),
		AreaUnit:     raw.firstString("areaUnit", "area_unit"),
	}

	l.Bedrooms, _ = raw.firstInt("bedrooms", "number_of_bedrooms", "bed_rooms", "beds")
	l.Bathrooms, _ = raw.firstInt("bathrooms", "number_of_bathrooms", "bath_rooms", "baths")
	l.AreaSize, _ = raw.firstNumber("areaSize", "area_size", "property_size", "size")
	if l.AreaUnit == "" {
		l.AreaUnit = "sqm"
	}

	l.Media = resolveMedia(raw, l.ID)
	l.Amenities = resolveAmenities(raw)

	l.CreatedAt, _ = raw.firstTime("createdAt", "created_at", "listedAt", "list_time")
	l.UpdatedAt, _ = raw.firstTime("updatedAt", "updated_at")
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = l.CreatedAt
	}
	return l
}

// resolveAddress walks the historical address shapes in preference order:
// nested address object, flat fields, legacy location object, bare string.
// A record matching none of them renders as UnknownLocation via the zero
// Address.
func resolveAddress(raw rawRecord) domain.Address {
	if nested, ok := raw.firstObject("address"); ok {
		return domain.Address{
			Street:        nested.firstString("street", "street_address", "streetAddress"),
			City:          nested.firstString("city", "town"),
			SubCity:       nested.firstString("sub_city", "subCity", "subcity"),
			RegionalState: nested.firstString("regional_state", "regionalState", "state", "region"),
			Country:       nested.firstString("country"),
		}
	}

	flat := domain.Address{
		Street:        raw.firstString("street", "street_address", "streetAddress"),
		City:          raw.firstString("city", "town"),
		SubCity:       raw.firstString("sub_city", "subCity", "subcity"),
		RegionalState: raw.firstString("regional_state", "regionalState", "state"),
		Country:       raw.firstString("country"),
	}
	if flat.DisplayLabel() != domain.UnknownLocation {
		return flat
	}

	if legacy, ok := raw.firstObject("location"); ok {
		return domain.Address{
			Street:        legacy.firstString("street", "address"),
			City:          legacy.firstString("city", "town"),
			SubCity:       legacy.firstString("sub_city", "subCity"),
			RegionalState: legacy.firstString("regional_state", "region", "state"),
			Country:       legacy.firstString("country"),
		}
	}

	if bare := raw.firstString("address"); bare != "" {
		return domain.Address{Street: bare}
	}

	return domain.Address{}
}

// resolvePrice prefers the nested price object, then the flat legacy fields.
// Currency defaults to ETB.
func resolvePrice(raw rawRecord) domain.Price {
	p := domain.Price{Currency: domain.DefaultCurrency}
	if nested, ok := raw.firstObject("price"); ok {
		p.Amount, _ = nested.firstNumber("amount", "value")
		if cur := nested.firstString("currency"); cur != "" {
			p.Currency = cur
		}
		return p
	}
	p.Amount, _ = raw.firstNumber("price", "total_price", "totalPrice", "price_amount")
	if cur := raw.firstString("currency"); cur != "" {
		p.Currency = cur
	}
	return p
}

// mediaKeys in collection order; all recognized lists are concatenated.
var mediaKeys = []string{"media_paths", "media", "images", "image_urls", "photos"}

func resolveMedia(raw rawRecord, id string) []domain.Media {
	var media []domain.Media
	for _, key := range mediaKeys {
		items, ok := raw[key].([]interface{})
		if !ok {
			continue
		}
		for _, item := range items {
			switch v := item.(type) {
			case string:
				if v != "" {
					media = append(media, domain.Media{URL: v})
				}
			case map[string]interface{}:
				obj := rawRecord(v)
				url := obj.firstString("url", "path", "filePath", "file_path", "src")
				if url != "" {
					media = append(media, domain.Media{
						URL:     url,
						Caption: obj.firstString("caption", "label"),
					})
				}
			}
		}
	}
	if len(media) == 0 {
		media = append(media, domain.Media{URL: placeholderFor(id)})
	}
	return media
}

// placeholderFor picks one of the fixed placeholder images, stable per id.
func placeholderFor(id string) string {
	h := fnv.New32a()
	h.Write([]byte(id))
	return domain.PlaceholderImages[int(h.Sum32())%len(domain.PlaceholderImages)]
}

// knownAmenities is the hyphenated identifier set the current backend schema
// expects.
var knownAmenities = map[string]struct{}{
	"parking-space":      {},
	"garage":             {},
	"garden":             {},
	"swimming-pool":      {},
	"gym-fitness":        {},
	"elevator":           {},
	"internet":           {},
	"electricity":        {},
	"water-supply":       {},
	"backup-generator":   {},
	"security-guard":     {},
	"cctv-surveillance":  {},
	"24-7-security":      {},
	"air-conditioning":   {},
	"heating":            {},
	"balcony-terrace":    {},
	"furnished":          {},
	"kitchen-appliances": {},
	"laundry":            {},
	"storage-space":      {},
}

// amenityAliases maps legacy identifiers to their current names where a
// plain snake-to-hyphen rewrite is not enough.
var amenityAliases = map[string]string{
	"gym":            "gym-fitness",
	"fitness-center": "gym-fitness",
	"pool":           "swimming-pool",
	"terrace":        "balcony-terrace",
	"balcony":        "balcony-terrace",
	"cctv":           "cctv-surveillance",
	"guard":          "security-guard",
	"parking":        "parking-space",
	"water":          "water-supply",
	"generator":      "backup-generator",
	"wifi":           "internet",
}

// resolveAmenities normalizes legacy snake_case amenity ids to the
// hyphenated set. Unknown identifiers are dropped, not errored.
func resolveAmenities(raw rawRecord) []string {
	items, ok := raw.firstSlice("amenities", "features")
	if !ok {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		canonical := normalizeAmenity(s)
		if canonical == "" {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	return out
}

func normalizeAmenity(s string) string {
	id := strings.ToLower(strings.TrimSpace(s))
	id = strings.ReplaceAll(id, "_", "-")
	id = strings.ReplaceAll(id, " ", "-")
	if alias, ok := amenityAliases[id]; ok {
		id = alias
	}
	if _, known := knownAmenities[id]; !known {
		return ""
	}
	return id
}

func toDomainConversation(raw rawRecord) domain.Conversation {
	conv := domain.Conversation{
		ID:          raw.firstString("id", "_id", "conversationId", "conversation_id"),
		LastMessage: raw.firstString("lastMessage", "last_message", "preview"),
	}
	if nested, ok := raw.firstObject("lastMessage", "last_message"); ok {
		conv.LastMessage = nested.firstString("content", "text", "body")
		conv.LastMessageAt, _ = nested.firstTime("createdAt", "created_at", "timestamp")
	}
	conv.UnreadCount, _ = raw.firstInt("unreadCount", "unread_count", "unread")

	if prop, ok := raw.firstObject("property"); ok {
		conv.ListingID = prop.firstString("id", "_id")
	} else {
		conv.ListingID = raw.firstString("propertyId", "property_id")
	}

	if participants, ok := raw.firstSlice("participants", "members"); ok {
		for _, item := range participants {
			obj, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			p := rawRecord(obj)
			conv.Participants = append(conv.Participants, domain.Participant{
				ID:   p.firstString("id", "_id", "userId", "user_id"),
				Name: p.firstString("name", "firstName", "first_name", "fullName"),
				Role: p.firstString("role", "userType", "user_type"),
			})
		}
	}

	conv.CreatedAt, _ = raw.firstTime("createdAt", "created_at")
	if at, ok := raw.firstTime("lastMessageAt", "last_message_at", "updatedAt", "updated_at"); ok && conv.LastMessageAt.IsZero() {
		conv.LastMessageAt = at
	}
	return conv
}

func toDomainMessage(raw rawRecord) domain.Message {
	m := domain.Message{
		ID:             raw.firstString("id", "_id", "messageId", "message_id"),
		ConversationID: raw.firstString("conversationId", "conversation_id"),
		SenderID:       raw.firstString("senderId", "sender_id", "from"),
		Content:        raw.firstString("content", "text", "body", "message"),
	}
	if sender, ok := raw.firstObject("sender"); ok && m.SenderID == "" {
		m.SenderID = sender.firstString("id", "_id")
	}
	m.Read = raw.firstString("isRead", "read", "is_read") == "true"
	m.CreatedAt, _ = raw.firstTime("createdAt", "created_at", "timestamp")
	return m
}

func toDomainPendingMessage(raw rawRecord) domain.PendingMessage {
	p := domain.PendingMessage{
		ID:          raw.firstString("id", "_id", "messageId", "message_id"),
		SenderID:    raw.firstString("senderId", "sender_id"),
		SenderName:  raw.firstString("senderName", "sender_name"),
		RecipientID: raw.firstString("recipientId", "recipient_id"),
		ListingID:   raw.firstString("propertyId", "property_id"),
		Content:     raw.firstString("content", "text", "body", "message"),
	}
	if sender, ok := raw.firstObject("sender"); ok {
		if p.SenderID == "" {
			p.SenderID = sender.firstString("id", "_id")
		}
		if p.SenderName == "" {
			p.SenderName = sender.firstString("name", "firstName", "fullName")
		}
	}
	p.CreatedAt, _ = raw.firstTime("createdAt", "created_at", "timestamp")
	return p
}

func toDomainAgent(raw rawRecord) domain.Agent {
	a := domain.Agent{
		ID:             raw.firstString("id", "_id", "agentId", "agent_id"),
		Name:           raw.firstString("name", "fullName", "full_name", "firstName"),
		Phone:          raw.firstString("phone", "phoneNumber", "phone_number"),
		Email:          raw.firstString("email"),
		Region:         raw.firstString("region", "regionalState", "regional_state"),
		Specialization: raw.firstString("specialization", "specialty"),
	}
	a.Rating, _ = raw.firstNumber("rating", "averageRating", "average_rating")
	a.Verified = raw.firstString("isVerified", "verified", "is_verified") == "true"
	return a
}
