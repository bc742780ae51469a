package structs

import "time"

// Bilingual holds the English and Hindi renditions of a text field.
type Bilingual struct {
	En string `json:"en" bson:"en"`
	Hi string `json:"hi" bson:"hi"`
}

type CastMember struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	RoleName string `json:"role_name" bson:"role_name"`
	PhotoURL string `json:"photo_url" bson:"photo_url"`
}

type CrewMember struct {
	ID         string `json:"id" bson:"id"`
	Name       string `json:"name" bson:"name"`
	Department string `json:"department" bson:"department"`
	PhotoURL   string `json:"photo_url" bson:"photo_url"`
}

type Episode struct {
	EpisodeID    string    `json:"episodeid" bson:"episodeid"`
	Number       int       `json:"number" bson:"number"`
	Title        Bilingual `json:"title" bson:"title"`
	Description  Bilingual `json:"description" bson:"description"`
	VideoURL     string    `json:"video_url" bson:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url" bson:"thumbnail_url"`
	DurationMins int       `json:"duration_mins" bson:"duration_mins"`
	Views        int64     `json:"views" bson:"views"`
}

type Season struct {
	SeasonID string    `json:"seasonid" bson:"seasonid"`
	Number   int       `json:"number" bson:"number"`
	Title    Bilingual `json:"title" bson:"title"`
	Episodes []Episode `json:"episodes" bson:"episodes"`
}

// ContentItem is a movie, a web series or a short film. Seasons is only
// populated for web series.
type ContentItem struct {
	ContentID    string       `json:"contentid" bson:"contentid"`
	Type         string       `json:"type" bson:"type"` // movie | webseries | shortfilm
	Title        Bilingual    `json:"title" bson:"title"`
	Description  Bilingual    `json:"description" bson:"description"`
	PosterURL    string       `json:"poster_url" bson:"poster_url"`
	ThumbnailURL string       `json:"thumbnail_url" bson:"thumbnail_url"`
	BackdropURL  string       `json:"backdrop_url" bson:"backdrop_url"`
	VideoURL     string       `json:"video_url" bson:"video_url"`
	TrailerURL   string       `json:"trailer_url" bson:"trailer_url"`
	Genres       []string     `json:"genres" bson:"genres"`
	Language     string       `json:"language" bson:"language"`
	ReleaseDate  string       `json:"release_date" bson:"release_date"`
	DurationMins int          `json:"duration_mins" bson:"duration_mins"`
	Premium      bool         `json:"premium" bson:"premium"`
	Featured     bool         `json:"featured" bson:"featured"`
	Trending     bool         `json:"trending" bson:"trending"`
	Cast         []CastMember `json:"cast" bson:"cast"`
	Crew         []CrewMember `json:"crew" bson:"crew"`
	Seasons      []Season     `json:"seasons,omitempty" bson:"seasons,omitempty"`
	Status       string       `json:"status" bson:"status"` // draft | published | archived
	Views        int64        `json:"views" bson:"views"`
	Likes        int64        `json:"likes" bson:"likes"`
	Rating       float64      `json:"rating" bson:"rating"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" bson:"updated_at"`
}

type TicketTier struct {
	TierID      string  `json:"tierid" bson:"tierid"`
	Name        string  `json:"name" bson:"name"`
	Price       float64 `json:"price" bson:"price"`
	Total       int     `json:"total" bson:"total"`
	Available   int     `json:"available" bson:"available"`
	Recommended bool    `json:"recommended" bson:"recommended"`
	SoldOut     bool    `json:"sold_out" bson:"sold_out"`
}

type Person struct {
	ID       string    `json:"id" bson:"id"`
	Name     Bilingual `json:"name" bson:"name"`
	Tagline  string    `json:"tagline" bson:"tagline"`
	PhotoURL string    `json:"photo_url" bson:"photo_url"`
}

type FAQItem struct {
	Question Bilingual `json:"question" bson:"question"`
	Answer   Bilingual `json:"answer" bson:"answer"`
}

type Sponsor struct {
	ID      string `json:"id" bson:"id"`
	Name    string `json:"name" bson:"name"`
	LogoURL string `json:"logo_url" bson:"logo_url"`
	Website string `json:"website" bson:"website"`
}

type Event struct {
	EventID        string       `json:"eventid" bson:"eventid"`
	Title          Bilingual    `json:"title" bson:"title"`
	Description    Bilingual    `json:"description" bson:"description"`
	Venue          Bilingual    `json:"venue" bson:"venue"`
	City           string       `json:"city" bson:"city"`
	Date           string       `json:"date" bson:"date"`
	Time           string       `json:"time" bson:"time"`
	BannerURL      string       `json:"banner_url" bson:"banner_url"`
	GalleryURLs    []string     `json:"gallery_urls" bson:"gallery_urls"`
	TrailerURL     string       `json:"trailer_url" bson:"trailer_url"`
	TicketTiers    []TicketTier `json:"ticket_tiers" bson:"ticket_tiers"`
	TotalSeats     int          `json:"total_seats" bson:"total_seats"`
	AvailableSeats int          `json:"available_seats" bson:"available_seats"`
	BookedSeats    int          `json:"booked_seats" bson:"booked_seats"`
	Hosts          []Person     `json:"hosts,omitempty" bson:"hosts,omitempty"`
	Performers     []Person     `json:"performers,omitempty" bson:"performers,omitempty"`
	Speakers       []Person     `json:"speakers,omitempty" bson:"speakers,omitempty"`
	FAQ            []FAQItem    `json:"faq,omitempty" bson:"faq,omitempty"`
	Sponsors       []Sponsor    `json:"sponsors,omitempty" bson:"sponsors,omitempty"`
	MediaPartners  []Sponsor    `json:"media_partners,omitempty" bson:"media_partners,omitempty"`
	Status         string       `json:"status" bson:"status"`
	CreatorID      string       `json:"creatorid" bson:"creatorid"`
	CreatedAt      time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" bson:"updated_at"`
}

type Admin struct {
	UserID       string    `json:"userid" bson:"userid"`
	Email        string    `json:"email" bson:"email"`
	Name         string    `json:"name" bson:"name"`
	Role         string    `json:"role" bson:"role"` // admin | super_admin
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Actor is the identity snapshot attached to every audit log entry.
type Actor struct {
	UID   string `json:"uid" bson:"uid"`
	Email string `json:"email" bson:"email"`
	Name  string `json:"name" bson:"name"`
	Role  string `json:"role" bson:"role"`
}

type SystemLog struct {
	LogID       string    `json:"logid" bson:"logid"`
	Action      string    `json:"action" bson:"action"`
	Module      string    `json:"module" bson:"module"`
	SubModule   string    `json:"sub_module,omitempty" bson:"sub_module,omitempty"`
	PerformedBy Actor     `json:"performed_by" bson:"performed_by"`
	Details     string    `json:"details" bson:"details"`
	Status      string    `json:"status" bson:"status"` // success | error | warning
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}

// ActivityLog mirrors SystemLog for the activity feed with a flatter,
// feed-oriented shape. The two collections deliberately diverge.
type ActivityLog struct {
	LogID         string    `json:"logid" bson:"logid"`
	Action        string    `json:"action" bson:"action"`
	Module        string    `json:"module" bson:"module"`
	ItemID        string    `json:"itemid,omitempty" bson:"itemid,omitempty"`
	ItemType      string    `json:"itemtype,omitempty" bson:"itemtype,omitempty"`
	PerformerUID  string    `json:"performer_uid" bson:"performer_uid"`
	PerformerName string    `json:"performer_name" bson:"performer_name"`
	Status        string    `json:"status" bson:"status"`
	Timestamp     time.Time `json:"timestamp" bson:"timestamp"`
}

// DailyStats is one analytics data point per calendar day, keyed by the ISO
// date string. Written by an external aggregation job; read-only here.
type DailyStats struct {
	Date             string  `json:"date" bson:"date"` // 2006-01-02
	TotalUsers       int64   `json:"total_users" bson:"total_users"`
	NewUsers         int64   `json:"new_users" bson:"new_users"`
	Revenue          float64 `json:"revenue" bson:"revenue"`
	DailyRevenue     float64 `json:"daily_revenue" bson:"daily_revenue"`
	Views            int64   `json:"views" bson:"views"`
	DailyViews       int64   `json:"daily_views" bson:"daily_views"`
	WatchTimeMinutes int64   `json:"watch_time_minutes" bson:"watch_time_minutes"`
	AvgRating        float64 `json:"avg_rating" bson:"avg_rating"`
	Transactions     int64   `json:"transactions" bson:"transactions"`
}

type MonthlyStats struct {
	Month         string  `json:"month" bson:"month"` // 2006-01
	TotalUsers    int64   `json:"total_users" bson:"total_users"`
	TotalContent  int64   `json:"total_content" bson:"total_content"`
	Subscriptions int64   `json:"subscriptions" bson:"subscriptions"`
	Transactions  int64   `json:"transactions" bson:"transactions"`
	Revenue       float64 `json:"revenue" bson:"revenue"`
}

type CategoryPerformance struct {
	Views            int64   `json:"views" bson:"views"`
	WatchTimeMinutes int64   `json:"watch_time_minutes" bson:"watch_time_minutes"`
	Revenue          float64 `json:"revenue" bson:"revenue"`
	AvgRating        float64 `json:"avg_rating" bson:"avg_rating"`
}

// ContentPerformance is a singleton rollup document, read-only here.
type ContentPerformance struct {
	Movies     CategoryPerformance `json:"movies" bson:"movies"`
	Webseries  CategoryPerformance `json:"webseries" bson:"webseries"`
	ShortFilms CategoryPerformance `json:"shortfilms" bson:"shortfilms"`
	Events     CategoryPerformance `json:"events" bson:"events"`
	UpdatedAt  time.Time           `json:"updated_at" bson:"updated_at"`
}

// AnalyticsSummary is the all-time rollup singleton, read-only here.
type AnalyticsSummary struct {
	TotalUsers       int64     `json:"total_users" bson:"total_users"`
	TotalContent     int64     `json:"total_content" bson:"total_content"`
	TotalViews       int64     `json:"total_views" bson:"total_views"`
	TotalRevenue     float64   `json:"total_revenue" bson:"total_revenue"`
	WatchTimeMinutes int64     `json:"watch_time_minutes" bson:"watch_time_minutes"`
	Subscriptions    int64     `json:"subscriptions" bson:"subscriptions"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}

type CDNSettings struct {
	Enabled      bool      `json:"enabled" bson:"enabled"`
	Provider     string    `json:"provider" bson:"provider"` // storage | selfhosted | bunny
	CustomDomain string    `json:"custom_domain" bson:"custom_domain"`
	PublicBucket string    `json:"public_bucket" bson:"public_bucket"`
	PullZone     string    `json:"pull_zone" bson:"pull_zone"`
	CDNDomain    string    `json:"cdn_domain" bson:"cdn_domain"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

type EncodingSettings struct {
	AutoEncode         bool      `json:"auto_encode" bson:"auto_encode"`
	Codec              string    `json:"codec" bson:"codec"`
	Container          string    `json:"container" bson:"container"`
	Resolutions        []string  `json:"resolutions" bson:"resolutions"`
	MaxBitrateKbps     int       `json:"max_bitrate_kbps" bson:"max_bitrate_kbps"`
	GenerateThumbnails bool      `json:"generate_thumbnails" bson:"generate_thumbnails"`
	ThumbnailInterval  int       `json:"thumbnail_interval" bson:"thumbnail_interval"`
	UpdatedAt          time.Time `json:"updated_at" bson:"updated_at"`
}

// QualityPreset maps a named resolution to concrete encode parameters.
type QualityPreset struct {
	Label       string `json:"label"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	BitrateKbps int    `json:"bitrate_kbps"`
}
