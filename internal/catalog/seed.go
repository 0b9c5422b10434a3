package catalog

import (
	"ms-storefront/internal/models"

	"github.com/shopspring/decimal"
)

const imageParams = "?w=500&h=400&fit=crop"

func unsplash(photo string) string {
	return "https://images.unsplash.com/" + photo + imageParams
}

func paid(price int64, available, total int) *models.TicketInfo {
	return &models.TicketInfo{
		Price:            decimal.NewFromInt(price),
		Currency:         "$",
		AvailableTickets: models.IntPtr(available),
		TotalTickets:     models.IntPtr(total),
	}
}

func free(available, total int) *models.TicketInfo {
	return &models.TicketInfo{
		IsFree:           true,
		Price:            decimal.Zero,
		AvailableTickets: models.IntPtr(available),
		TotalTickets:     models.IntPtr(total),
	}
}

// SeedEvents returns a fresh copy of the start-up catalog. Callers may mutate the result.
func SeedEvents() []models.Event {
	return []models.Event{
		{
			ID:          "1",
			Title:       "Summer Jazz Festival",
			Description: "Experience the best jazz musicians from around the world in this three-day festival.",
			StartDate:   "2025-08-15",
			EndDate:     "2025-08-17",
			StartTime:   "7:00 PM",
			EndTime:     "11:00 PM",
			Location:    "Central Park Amphitheater, New York",
			Category:    "Music",
			Image:       unsplash("photo-1493225457124-a3eb161ffa5f"),
			Organizer:   "NYC Music Events",
			TicketInfo:  paid(45, 250, 500),
		},
		{
			ID:          "2",
			Title:       "Modern Art Exhibition",
			Description: "Discover contemporary masterpieces by emerging and established artists.",
			StartDate:   "2025-08-20",
			EndDate:     "2025-09-15",
			StartTime:   "10:00 AM",
			EndTime:     "6:00 PM",
			Location:    "Metropolitan Art Gallery, Downtown",
			Category:    "Arts",
			Image:       unsplash("photo-1541961017774-22349e4a1262"),
			Organizer:   "Art Collective NYC",
			TicketInfo:  paid(15, 150, 200),
		},
		{
			ID:          "3",
			Title:       "Community Sports Day",
			Description: "Join us for a day of friendly competition, games, and community spirit.",
			StartDate:   "2025-08-18",
			EndDate:     "2025-08-18",
			StartTime:   "9:00 AM",
			EndTime:     "5:00 PM",
			Location:    "Riverside Sports Complex",
			Category:    "Sports",
			Image:       unsplash("photo-1571019613454-1cb2f99b2d8b"),
			Organizer:   "Community Recreation",
			TicketInfo:  free(500, 500),
		},
		{
			ID:          "4",
			Title:       "Food Truck Festival",
			Description: "Taste amazing food from local vendors and food trucks all in one place.",
			StartDate:   "2025-08-22",
			EndDate:     "2025-08-24",
			StartTime:   "11:00 AM",
			EndTime:     "9:00 PM",
			Location:    "Downtown Plaza",
			Category:    "Food & Drink",
			Image:       unsplash("photo-1565299624946-b28f40a0ca4b"),
			Organizer:   "Street Food Alliance",
			TicketInfo:  paid(25, 75, 300),
		},
		{
			ID:          "5",
			Title:       "Rock Concert Night",
			Description: "Local bands perform their greatest hits in an intimate venue setting.",
			StartDate:   "2025-08-25",
			EndDate:     "2025-08-25",
			StartTime:   "8:00 PM",
			EndTime:     "12:00 AM",
			Location:    "The Underground Club",
			Category:    "Music",
			Image:       unsplash("photo-1501386761578-eac5c94b800a"),
			Organizer:   "Rock Venue NYC",
			TicketInfo:  paid(35, 0, 200),
		},
		{
			ID:          "6",
			Title:       "Photography Workshop",
			Description: "Learn professional photography techniques from industry experts.",
			StartDate:   "2025-08-19",
			EndDate:     "2025-08-19",
			StartTime:   "2:00 PM",
			EndTime:     "6:00 PM",
			Location:    "Creative Studio Downtown",
			Category:    "Photography",
			Image:       unsplash("photo-1606983340126-99ab4feaa64a"),
			Organizer:   "Photo Academy",
			TicketInfo:  paid(85, 12, 20),
		},
		{
			ID:          "7",
			Title:       "Wellness Retreat",
			Description: "A day of meditation, yoga, and mindfulness practices in nature.",
			StartDate:   "2025-08-17",
			EndDate:     "2025-08-17",
			StartTime:   "8:00 AM",
			EndTime:     "4:00 PM",
			Location:    "Serenity Gardens",
			Category:    "Wellness",
			Image:       unsplash("photo-1544367567-0f2fcb009e0b"),
			Organizer:   "Mindful Living",
			TicketInfo:  free(40, 50),
		},
		{
			ID:          "8",
			Title:       "Comedy Show",
			Description: "Laugh out loud with the city's funniest comedians.",
			StartDate:   "2025-08-21",
			EndDate:     "2025-08-21",
			StartTime:   "9:00 PM",
			EndTime:     "11:30 PM",
			Location:    "Comedy Central Theater",
			Category:    "Entertainment",
			Image:       unsplash("photo-1585699225809-c6bc4d3226b9"),
			Organizer:   "Laugh Factory",
			TicketInfo:  paid(28, 95, 150),
		},
	}
}

// DefaultImages maps a category id to the stock image used when a submission has none.
var DefaultImages = map[string]string{
	"music":         unsplash("photo-1493225457124-a3eb161ffa5f"),
	"arts":          unsplash("photo-1541961017774-22349e4a1262"),
	"sports":        unsplash("photo-1571019613454-1cb2f99b2d8b"),
	"social":        unsplash("photo-1529156069898-49953e39b3ac"),
	"food":          unsplash("photo-1565299624946-b28f40a0ca4b"),
	"photography":   unsplash("photo-1606983340126-99ab4feaa64a"),
	"entertainment": unsplash("photo-1585699225809-c6bc4d3226b9"),
	"wellness":      unsplash("photo-1544367567-0f2fcb009e0b"),
}

// FallbackImage is used for categories without a stock image.
var FallbackImage = unsplash("photo-1492684223066-81342ee5ff30")

// DefaultImage resolves the stock image for a category id or display name.
func DefaultImage(category string) string {
	if img, ok := DefaultImages[category]; ok {
		return img
	}
	if c, ok := models.CategoryByName(category); ok {
		if img, ok := DefaultImages[c.ID]; ok {
			return img
		}
	}
	return FallbackImage
}
