package models

type Availability string

const (
	AvailabilityYes Availability = "Yes"
	AvailabilityNo  Availability = "No"
)

type CirculationAction string

const (
	ActionIssue  CirculationAction = "issue"
	ActionReturn CirculationAction = "return"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"`
}

type Book struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"size:255;not null" json:"name"`
	Author      string       `gorm:"size:255" json:"author"`
	Type        string       `gorm:"size:255" json:"type"`
	Description string       `json:"description"`
	Available   Availability `gorm:"size:3;not null;default:Yes" json:"available"`
}

// Transaction is one row of the circulation ledger. BookName is a free
// string, not a foreign key: the ledger records whatever was submitted,
// whether or not a matching Book exists.
type Transaction struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	BookName    string            `gorm:"size:255" json:"book_name"`
	StudentName string            `gorm:"size:255" json:"student_name"`
	DateTime    string            `gorm:"size:32" json:"date_time"`
	Action      CirculationAction `gorm:"size:16" json:"action"`
}

// TimestampLayout is the ledger timestamp format, local server time.
const TimestampLayout = "2006-01-02 15:04:05"
