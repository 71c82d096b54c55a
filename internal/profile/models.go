package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CanonicalProfile is the normalized representation of a person built
// from an enrichment payload. Every field is always present in JSON
// output: optional scalars are empty strings (or nil pointers for
// numerics), list fields are empty slices, never absent keys. Downstream
// consumers must not need to branch on key presence.
type CanonicalProfile struct {
	// Identity
	FullName      string `json:"full_name"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	EmailVerified string `json:"email_verified"`
	Phone         string `json:"phone"`
	ProfilePhoto  string `json:"profile_photo"`
	Headline      string `json:"headline"`
	Bio           string `json:"bio"`
	Birthday      string `json:"birthday"`

	// Professional
	Profession      string `json:"profession"`
	Company         string `json:"company"`
	CompanyDomain   string `json:"company_domain"`
	CompanySize     string `json:"company_size"`
	CompanyIndustry string `json:"company_industry"`
	Industry        string `json:"industry"`
	Seniority       string `json:"seniority"`
	YearsExperience *int   `json:"years_experience"`

	// Location
	LikelyLocation string `json:"likely_location"`
	City           string `json:"city"`
	State          string `json:"state"`
	Country        string `json:"country"`
	Timezone       string `json:"timezone"`
	Address        string `json:"address"`

	// Social profiles
	SocialProfiles SocialProfiles `json:"social_profiles"`

	// History
	WorkHistory    []WorkEntry      `json:"work_history"`
	Education      []EducationEntry `json:"education"`
	Skills         []string         `json:"skills"`
	Languages      []string         `json:"languages"`
	Certifications []Certification  `json:"certifications"`

	// LinkedIn specific
	Recommendations []Recommendation `json:"recommendations"`
	Volunteering    []Volunteering   `json:"volunteering"`
	Causes          []string         `json:"causes"`

	// Personal
	VehicleOwnership string `json:"vehicle_ownership"`

	// Social graph (from the interactions endpoint)
	TwitterFollowing []FollowedAccount `json:"twitter_following"`

	// Press mentions (from the article search endpoint)
	PressMentions []PressMention `json:"press_mentions"`

	// Recent posts across platforms
	RecentPosts []SocialPost `json:"recent_posts"`

	// Civic interest tags, deduplicated, capped at MaxInterests
	Interests []string `json:"interests"`

	// LLM side-channel annotation. Nil when LLM enrichment was skipped
	// or failed; never partially populated.
	Insights *Insights `json:"llm_insights,omitempty"`

	// Metadata
	ConfidenceScore *float64       `json:"confidence_score"`
	DataSource      string         `json:"data_source"`
	RawData         map[string]any `json:"raw_data,omitempty"`
}

// SocialProfiles holds URLs for a fixed set of named platforms plus an
// open-ended list of other platform/URL pairs.
type SocialProfiles struct {
	LinkedIn  string       `json:"linkedin"`
	Twitter   string       `json:"twitter"`
	GitHub    string       `json:"github"`
	Facebook  string       `json:"facebook"`
	Instagram string       `json:"instagram"`
	Strava    string       `json:"strava"`
	Pinterest string       `json:"pinterest"`
	Flickr    string       `json:"flickr"`
	Other     []SocialLink `json:"other"`
}

// SocialLink is a platform/URL pair outside the named set.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// WorkEntry is one normalized work-history record.
type WorkEntry struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsCurrent   bool   `json:"is_current"`
	Location    string `json:"location"`
}

// EducationEntry is one normalized education record.
type EducationEntry struct {
	School         string `json:"school"`
	Degree         string `json:"degree"`
	FieldOfStudy   string `json:"field_of_study"`
	GraduationYear string `json:"graduation_year"`
	Description    string `json:"description"`
}

// Certification is a normalized certification record. Bare-string
// upstream entries map to Name only.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

// Recommendation is a received recommendation.
type Recommendation struct {
	Recommender  string `json:"recommender"`
	Relationship string `json:"relationship"`
	Text         string `json:"text"`
}

// Volunteering is one volunteering record.
type Volunteering struct {
	Organization string `json:"organization"`
	Role         string `json:"role"`
	Cause        string `json:"cause"`
	Description  string `json:"description"`
}

// FollowedAccount is one account from the social-graph following list.
type FollowedAccount struct {
	Name      string `json:"name"`
	Handle    string `json:"handle"`
	Bio       string `json:"bio"`
	Followers int    `json:"followers"`
	Category  string `json:"category"`
}

// PressMention is one article mentioning the person.
type PressMention struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	URL     string `json:"url"`
	Date    string `json:"date"`
	Snippet string `json:"snippet"`
}

// SocialPost is one recent post from any platform.
type SocialPost struct {
	Platform   string `json:"platform"`
	Content    string `json:"content"`
	URL        string `json:"url"`
	Date       string `json:"date"`
	Engagement int    `json:"engagement"`
}

// Insights is the side-channel annotation produced by the LLM quick
// interests call. It sits alongside the interest tag set but is never
// mixed into it beyond the documented tag-union merge.
type Insights struct {
	PrimaryInterests   []string          `json:"primary_interests"`
	SecondaryInterests []string          `json:"secondary_interests"`
	LikelyStance       map[string]string `json:"likely_stance"`
	EngagementLevel    string            `json:"engagement_level"`
	Summary            string            `json:"summary"`
	CivicAnalysis      string            `json:"civic_analysis,omitempty"`
	Model              string            `json:"model,omitempty"`
}

// NewCanonicalProfile returns a profile with every list field
// initialized so serialized output never omits a canonical key.
func NewCanonicalProfile() *CanonicalProfile {
	return &CanonicalProfile{
		SocialProfiles:   SocialProfiles{Other: []SocialLink{}},
		WorkHistory:      []WorkEntry{},
		Education:        []EducationEntry{},
		Skills:           []string{},
		Languages:        []string{},
		Certifications:   []Certification{},
		Recommendations:  []Recommendation{},
		Volunteering:     []Volunteering{},
		Causes:           []string{},
		TwitterFollowing: []FollowedAccount{},
		PressMentions:    []PressMention{},
		RecentPosts:      []SocialPost{},
		Interests:        []string{},
		DataSource:       "unknown",
	}
}

// User is the persisted resident record, keyed by unique email.
type User struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email       string         `json:"email" gorm:"uniqueIndex;not null"`
	LinkedInURL string         `json:"linkedin_url" gorm:"column:linkedin_url"`
	ZipCode     string         `json:"zip_code"`
	HasCar      *bool          `json:"has_car"`
	HasKids     *bool          `json:"has_kids"`
	Profession  string         `json:"profession"`
	Interests   pq.StringArray `json:"interests" gorm:"type:text[]"`

	// Full enrichment output minus the raw upstream payload, stored for
	// the profile endpoint and for re-running matching.
	Inferred *CanonicalProfile `json:"inferred_data" gorm:"column:inferred_data;serializer:json;type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "fulcrum.users"
}
