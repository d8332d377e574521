package rest

import (
	"time"

	"listing-feed-service/internal/core/domain"
)

type mediaDTO struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type listingDTO struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	PropertyType  string     `json:"propertyType"`
	OfferingType  string     `json:"offeringType"`
	Price         float64    `json:"price"`
	PriceDisplay  string     `json:"priceDisplay"`
	Currency      string     `json:"currency"`
	AddressLabel  string     `json:"address"`
	RegionalState string     `json:"regionalState,omitempty"`
	Bedrooms      int        `json:"bedrooms"`
	Bathrooms     int        `json:"bathrooms"`
	AreaSize      float64    `json:"areaSize,omitempty"`
	AreaUnit      string     `json:"areaUnit,omitempty"`
	Media         []mediaDTO `json:"media"`
	Amenities     []string   `json:"amenities,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func toListingDTO(l domain.Listing) listingDTO {
	media := make([]mediaDTO, 0, len(l.Media))
	for _, m := range l.Media {
		media = append(media, mediaDTO{URL: m.URL, Caption: m.Caption})
	}
	return listingDTO{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		PropertyType:  l.PropertyType,
		OfferingType:  string(l.OfferingType),
		Price:         l.Price.Amount,
		PriceDisplay:  l.Price.Format(),
		Currency:      l.Price.Currency,
		AddressLabel:  l.Address.DisplayLabel(),
		RegionalState: l.Address.RegionalState,
		Bedrooms:      l.Bedrooms,
		Bathrooms:     l.Bathrooms,
		AreaSize:      l.AreaSize,
		AreaUnit:      l.AreaUnit,
		Media:         media,
		Amenities:     l.Amenities,
		CreatedAt:     l.CreatedAt,
	}
}

func toListingDTOs(ls []domain.Listing) []listingDTO {
	out := make([]listingDTO, 0, len(ls))
	for _, l := range ls {
		out = append(out, toListingDTO(l))
	}
	return out
}

type listingDetailsResponse struct {
	Listing listingDTO `json:"listing"`
	Source  string     `json:"source"`
	Notice  string     `json:"notice,omitempty"`
}

type participantDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

type conversationDTO struct {
	ID            string           `json:"id"`
	Participants  []participantDTO `json:"participants"`
	OtherParty    participantDTO   `json:"otherParty"`
	LastMessage   string           `json:"lastMessage,omitempty"`
	LastMessageAt time.Time        `json:"lastMessageAt"`
	UnreadCount   int              `json:"unreadCount"`
	ListingID     string           `json:"listingId,omitempty"`
}

func toConversationDTO(c domain.Conversation, selfID string) conversationDTO {
	participants := make([]participantDTO, 0, len(c.Participants))
	for _, p := range c.Participants {
		participants = append(participants, participantDTO(p))
	}
	other := c.OtherParty(selfID)
	return conversationDTO{
		ID:            c.ID,
		Participants:  participants,
		OtherParty:    participantDTO(other),
		LastMessage:   c.LastMessage,
		LastMessageAt: c.LastMessageAt,
		UnreadCount:   c.UnreadCount,
		ListingID:     c.ListingID,
	}
}

type messageDTO struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Content        string    `json:"content"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}

type messageGroupDTO struct {
	Date     string       `json:"date"`
	Messages []messageDTO `json:"messages"`
}

func toMessageGroupDTOs(groups []domain.MessageGroup) []messageGroupDTO {
	out := make([]messageGroupDTO, 0, len(groups))
	for _, g := range groups {
		msgs := make([]messageDTO, 0, len(g.Messages))
		for _, m := range g.Messages {
			msgs = append(msgs, messageDTO{
				ID:             m.ID,
				ConversationID: m.ConversationID,
				SenderID:       m.SenderID,
				Content:        m.Content,
				Read:           m.Read,
				CreatedAt:      m.CreatedAt,
			})
		}
		out = append(out, messageGroupDTO{Date: g.Date, Messages: msgs})
	}
	return out
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

type sendMessageResponse struct {
	Message messageDTO `json:"message"`
	Queued  bool       `json:"queued"`
	Notice  string     `json:"notice,omitempty"`
}

type pendingMessageDTO struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	ListingID  string    `json:"listingId,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toPendingMessageDTOs(msgs []domain.PendingMessage) []pendingMessageDTO {
	out := make([]pendingMessageDTO, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, pendingMessageDTO{
			ID:         m.ID,
			SenderID:   m.SenderID,
			SenderName: m.SenderName,
			ListingID:  m.ListingID,
			Content:    m.Content,
			CreatedAt:  m.CreatedAt,
		})
	}
	return out
}

type agentDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Phone          string  `json:"phone,omitempty"`
	Email          string  `json:"email,omitempty"`
	Region         string  `json:"region,omitempty"`
	Specialization string  `json:"specialization,omitempty"`
	Rating         float64 `json:"rating"`
	Verified       bool    `json:"verified"`
}

type filterOptionsDTO struct {
	RegionalStates []string `json:"regionalStates"`
	PriceRanges    []string `json:"priceRanges"`
	PropertyTypes  []string `json:"propertyTypes"`
	CountBuckets   []string `json:"countBuckets"`
	SortKeys       []string `json:"sortKeys"`
}

type mortgageRequest struct {
	Principal     float64 `json:"principal"`
	AnnualRatePct float64 `json:"annualRatePct"`
	TermYears     int     `json:"termYears"`
	DownPayment   float64 `json:"downPayment"`
}

type mortgageInstallmentDTO struct {
	Month            int     `json:"month"`
	PrincipalPortion float64 `json:"principalPortion"`
	InterestPortion  float64 `json:"interestPortion"`
	RemainingBalance float64 `json:"remainingBalance"`
}

type mortgageScheduleDTO struct {
	MonthlyPayment float64                  `json:"monthlyPayment"`
	TotalPayment   float64                  `json:"totalPayment"`
	TotalInterest  float64                  `json:"totalInterest"`
	Installments   []mortgageInstallmentDTO `json:"installments"`
}

func toMortgageScheduleDTO(s *domain.MortgageSchedule) mortgageScheduleDTO {
	installments := make([]mortgageInstallmentDTO, 0, len(s.Installments))
	for _, inst := range s.Installments {
		installments = append(installments, mortgageInstallmentDTO(inst))
	}
	return mortgageScheduleDTO{
		MonthlyPayment: s.MonthlyPayment,
		TotalPayment:   s.TotalPayment,
		TotalInterest:  s.TotalInterest,
		Installments:   installments,
	}
}
