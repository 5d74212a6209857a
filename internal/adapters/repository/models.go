package repository

// Dimension names, as used in errors, metrics and load results.
const (
	DimensionDate       = "date"
	DimensionTechnology = "technology"
	DimensionSeniority  = "seniority"
	DimensionCountry    = "country"
	DimensionCandidate  = "candidate"
)

// Dimensions lists the dimensions in load order.
var Dimensions = []string{DimensionDate, DimensionTechnology, DimensionSeniority, DimensionCountry, DimensionCandidate}

// DimDate is one calendar day, keyed YYYYMMDD. Key 0 is the unknown date.
type DimDate struct {
	DateID    int    `gorm:"column:date_id;primaryKey;autoIncrement:false"`
	FullDate  string `gorm:"column:full_date"`
	Day       int    `gorm:"column:day"`
	Month     int    `gorm:"column:month"`
	MonthName string `gorm:"column:month_name"`
	Quarter   int    `gorm:"column:quarter"`
	Year      int    `gorm:"column:year"`
}

func (DimDate) TableName() string { return "DimDate" }

type DimTechnology struct {
	TechnologyID int64  `gorm:"column:technology_id;primaryKey"`
	Technology   string `gorm:"column:technology;uniqueIndex"`
}

func (DimTechnology) TableName() string { return "DimTechnology" }

type DimSeniority struct {
	SeniorityID int64  `gorm:"column:seniority_id;primaryKey"`
	Seniority   string `gorm:"column:seniority;uniqueIndex"`
}

func (DimSeniority) TableName() string { return "DimSeniority" }

type DimCountry struct {
	CountryID int64  `gorm:"column:country_id;primaryKey"`
	Country   string `gorm:"column:country;uniqueIndex"`
}

func (DimCountry) TableName() string { return "DimCountry" }

type DimCandidate struct {
	CandidateID int64  `gorm:"column:candidate_id;primaryKey"`
	FirstName   string `gorm:"column:first_name"`
	LastName    string `gorm:"column:last_name"`
	Email       string `gorm:"column:email;uniqueIndex"`
}

func (DimCandidate) TableName() string { return "DimCandidate" }

// FactHiring is one candidate application. Absent scores are NULL.
type FactHiring struct {
	HiringID                int64    `gorm:"column:hiring_id;primaryKey"`
	CandidateID             int64    `gorm:"column:candidate_id"`
	TechnologyID            int64    `gorm:"column:technology_id"`
	SeniorityID             int64    `gorm:"column:seniority_id"`
	CountryID               int64    `gorm:"column:country_id"`
	DateID                  int      `gorm:"column:date_id"`
	YOE                     int      `gorm:"column:yoe"`
	CodeChallengeScore      *float64 `gorm:"column:code_challenge_score"`
	TechnicalInterviewScore *float64 `gorm:"column:technical_interview_score"`
	Hired                   int      `gorm:"column:hired"`
}

func (FactHiring) TableName() string { return "FactHiring" }
