// Package schema provides database models of the legal library.
//
// Models carry three kinds of struct tags:
//   - gorm: column types and constraints used by AutoMigrate;
//   - db: column names for hand-written SQL, ",server" marks columns
//     filled by the database;
//   - fts: "indexed" marks columns copied to the full-text index.
package schema

import (
	"database/sql"
	"time"
)

// Judgment is a court judgment with its full text.
type Judgment struct {
	// ID is the row identifier, shared with the full-text index rowid.
	ID int64 `db:"id,server" gorm:"column:id;primaryKey"`

	// CaseID is the natural key of a judgment, for example "123/1445".
	// NULL values never conflict with each other.
	CaseID sql.NullString `db:"case_id" fts:"indexed" gorm:"column:case_id;type:text;uniqueIndex"`

	// Year is the Hijri year of the judgment.
	Year sql.NullInt32 `db:"year" gorm:"column:year;index"`

	// City where the court is located.
	City sql.NullString `db:"city" fts:"indexed" gorm:"column:city;type:text"`

	// CourtBody is the court that issued the judgment.
	CourtBody sql.NullString `db:"court_body" fts:"indexed" gorm:"column:court_body;type:text"`

	// CircuitType is the kind of the court circuit.
	CircuitType sql.NullString `db:"circuit_type" gorm:"column:circuit_type;type:text"`

	// JudgmentNumber is the number assigned by the court.
	JudgmentNumber sql.NullString `db:"judgment_number" gorm:"column:judgment_number;type:text"`

	// JudgmentDate is kept as free text, dates come in many notations.
	JudgmentDate sql.NullString `db:"judgment_date" gorm:"column:judgment_date;type:text"`

	// Text is the full text of the judgment.
	Text sql.NullString `db:"text" fts:"indexed" gorm:"column:text;type:text"`

	CreatedAt time.Time `db:"created_at,server" gorm:"column:created_at;not null;default:now()"`
}

// TableName returns the PostgreSQL table name for this model.
func (Judgment) TableName() string {
	return "judgments"
}

// Principle is a judicial principle extracted from decisions of a
// court section.
type Principle struct {
	ID int64 `db:"id,server" gorm:"column:id;primaryKey"`

	// UUID is a v5 UUID generated from section and text. It stays the
	// same between imports of the same fixtures.
	UUID string `db:"uuid" gorm:"column:uuid;type:uuid;uniqueIndex"`

	// Section is one of the Section constants.
	Section string `db:"section" gorm:"column:section;type:varchar(20);index"`

	// SectionName is the localized name of the section.
	SectionName string `db:"section_name" fts:"indexed" gorm:"column:section_name;type:text"`

	Text string `db:"text" fts:"indexed" gorm:"column:text;type:text;not null"`

	// DecisionNumbers is a JSON list of decisions the principle
	// comes from.
	DecisionNumbers string `db:"decision_numbers" gorm:"column:decision_numbers;type:text"`

	Source sql.NullString `db:"source" gorm:"column:source;type:text"`

	SourceLocalized sql.NullString `db:"source_localized" fts:"indexed" gorm:"column:source_localized;type:text"`

	CreatedAt time.Time `db:"created_at,server" gorm:"column:created_at;not null;default:now()"`
}

// TableName returns the PostgreSQL table name for this model.
func (Principle) TableName() string {
	return "principles"
}

// Section is a court section that publishes principles.
type Section string

const (
	SectionCivil          Section = "civil"
	SectionPenalty        Section = "penalty"
	SectionAdministrative Section = "administrative"
	SectionPublic         Section = "public"
)

// Sections lists known sections in import order.
var Sections = []Section{
	SectionCivil,
	SectionPenalty,
	SectionAdministrative,
	SectionPublic,
}

var sectionNames = map[Section]string{
	SectionCivil:          "الدائرة المدنية",
	SectionPenalty:        "الدائرة الجزائية",
	SectionAdministrative: "الدائرة الإدارية",
	SectionPublic:         "الهيئة العامة",
}

// LocalizedName returns the Arabic name of the section.
func (s Section) LocalizedName() string {
	return sectionNames[s]
}

// IsKnown reports if s is one of the Sections.
func (s Section) IsKnown() bool {
	_, ok := sectionNames[s]
	return ok
}
