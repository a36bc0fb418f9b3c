package models

// GORM models for the documentation corpus and analytics tables.

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// StringArray for PostgreSQL text[] columns
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "{}", nil
	}
	return fmt.Sprintf("{%s}", strings.Join(s, ",")), nil
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}

	switch v := value.(type) {
	case string:
		v = strings.Trim(v, "{}")
		if v == "" {
			*s = StringArray{}
			return nil
		}
		*s = StringArray(strings.Split(v, ","))
	case []byte:
		return s.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into StringArray", value)
	}
	return nil
}

// Base model with common fields
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Document is one indexed documentation page. Created by the seeder;
// immutable from the engine's point of view.
type Document struct {
	BaseModel
	URL           string `json:"url" gorm:"not null"`
	Title         string `json:"title" gorm:"not null"`
	ComponentName string `json:"component_name" gorm:"index"`
	ComponentKey  string `json:"component_key" gorm:"index"` // normalized identity key
	Category      string `json:"category" gorm:"index"`
	// Four-level hierarchy path, e.g. "components/forms/text-field/usage".
	// Sibling pages of the same component share the first three segments.
	HierarchyPath string `json:"hierarchy_path" gorm:"index"`
	Content       string `json:"content" gorm:"type:text"`
	RawMarkup     string `json:"raw_markup" gorm:"type:text"`
	ContentHash   string `json:"content_hash"`

	// Associations
	CodeExamples []CodeExample   `json:"code_examples" gorm:"foreignKey:DocumentID"`
	Guidance     []GuidanceEntry `json:"guidance" gorm:"foreignKey:DocumentID"`
	Tags         []Tag           `json:"tags" gorm:"foreignKey:DocumentID"`
}

// CodeExample is a code snippet extracted from a document.
type CodeExample struct {
	BaseModel
	DocumentID  uint   `json:"document_id" gorm:"not null;index"`
	Language    string `json:"language"`
	Source      string `json:"source" gorm:"type:text;not null"`
	Position    int    `json:"position" gorm:"not null"`
	Variant     string `json:"variant"`
	UseCase     string `json:"use_case"`
	Complexity  string `json:"complexity" gorm:"check:complexity IN ('','basic','intermediate','advanced')"`
	Complete    bool   `json:"complete" gorm:"default:false"`
	Interactive bool   `json:"interactive" gorm:"default:false"`

	Document Document `json:"-" gorm:"foreignKey:DocumentID"`
}

// Guidance kinds
const (
	GuidanceWhenToUse    = "when_to_use"
	GuidanceWhenNotToUse = "when_not_to_use"
	GuidanceBestPractice = "best_practice"
	GuidanceDo           = "do"
	GuidanceDont         = "dont"
	GuidanceCaveat       = "caveat"
	GuidanceLimitation   = "limitation"
	GuidanceNote         = "note"
)

// GuidanceEntry is one piece of usage guidance attached to a document.
type GuidanceEntry struct {
	BaseModel
	DocumentID uint   `json:"document_id" gorm:"not null;index"`
	Kind       string `json:"kind" gorm:"not null;check:kind IN ('when_to_use','when_not_to_use','best_practice','do','dont','caveat','limitation','note')"`
	Text       string `json:"text" gorm:"type:text;not null"`
	Priority   int    `json:"priority" gorm:"default:0"`

	Document Document `json:"-" gorm:"foreignKey:DocumentID"`
}

// Tag categories
const (
	TagFeature       = "feature"
	TagAccessibility = "accessibility"
	TagCategory      = "category"
	TagInteraction   = "interaction"
)

// Tag labels a document for filtered retrieval.
type Tag struct {
	BaseModel
	DocumentID uint   `json:"document_id" gorm:"not null;index"`
	Tag        string `json:"tag" gorm:"not null;index"`
	Category   string `json:"category" gorm:"check:category IN ('feature','accessibility','category','interaction')"`

	Document Document `json:"-" gorm:"foreignKey:DocumentID"`
}

// SearchQuery represents search analytics
type SearchQuery struct {
	BaseModel
	QueryText       string    `json:"query_text" gorm:"not null"`
	UserSession     string    `json:"user_session"`
	ResultsCount    int       `json:"results_count" gorm:"default:0"`
	SearchTimestamp time.Time `json:"search_timestamp" gorm:"default:NOW()"`
	ResponseTimeMs  int       `json:"response_time_ms"`
	UserAgent       string    `json:"user_agent"`
	IPAddress       string    `json:"ip_address" gorm:"type:inet"`
}

// PopularQuery represents frequently searched terms
type PopularQuery struct {
	BaseModel
	QueryText         string    `json:"query_text" gorm:"unique;not null"`
	SearchCount       int       `json:"search_count" gorm:"default:1"`
	AvgResultsCount   float64   `json:"avg_results_count" gorm:"type:decimal(5,2);default:0"`
	AvgResponseTimeMs int       `json:"avg_response_time_ms" gorm:"default:0"`
	LastSearched      time.Time `json:"last_searched" gorm:"default:NOW()"`
}

// SystemHealth represents service health monitoring
type SystemHealth struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ServiceName    string    `json:"service_name" gorm:"not null"`
	Status         string    `json:"status" gorm:"not null;check:status IN ('healthy','degraded','unhealthy')"`
	ResponseTimeMs int       `json:"response_time_ms"`
	ErrorMessage   string    `json:"error_message"`
	CheckedAt      time.Time `json:"checked_at" gorm:"default:NOW()"`
}

// Repository interfaces consumed by the engine. The search and
// validation cores never touch gorm directly.
type DocumentRepository interface {
	Create(doc *Document) error
	GetByID(id uint) (*Document, error)
	// GetByComponentKey fetches a document by its normalized identity key.
	// Returns gorm.ErrRecordNotFound when no document matches.
	GetByComponentKey(key string) (*Document, error)
	GetSiblings(doc *Document) ([]Document, error)
	GetAll() ([]Document, error)
	Update(doc *Document) error
	Delete(id uint) error

	// FetchCandidates is the retrieval half of the search pipeline: an
	// unordered, dedup-by-id read across title/component/tag signals for
	// any of the expanded queries. Never applies relevance ordering.
	FetchCandidates(ctx context.Context, queries []string, filters SearchFilters, cap int) ([]Document, error)
}

type CodeExampleRepository interface {
	Create(example *CodeExample) error
	GetByDocumentID(documentID uint) ([]CodeExample, error)
	GetByComplexity(documentID uint, complexity string) ([]CodeExample, error)
}

type GuidanceRepository interface {
	Create(entry *GuidanceEntry) error
	GetByDocumentID(documentID uint) ([]GuidanceEntry, error)
	GetByKind(documentID uint, kind string) ([]GuidanceEntry, error)
}

type SearchQueryRepository interface {
	Create(query *SearchQuery) error
	GetRecentSearches(limit int) ([]SearchQuery, error)
	GetBySession(session string) ([]SearchQuery, error)
}

type PopularQueryRepository interface {
	IncrementCount(queryText string) error
	GetTop(limit int) ([]PopularQuery, error)
	UpdateStats(queryText string, resultsCount float64, responseTime int) error
}

type SystemHealthRepository interface {
	UpdateServiceHealth(serviceName, status string, responseTime int, errorMsg string) error
	GetServiceHealth(serviceName string) (*SystemHealth, error)
	GetAllServicesHealth() ([]SystemHealth, error)
}

// TableName methods for custom table names
func (Document) TableName() string      { return "documents" }
func (CodeExample) TableName() string   { return "code_examples" }
func (GuidanceEntry) TableName() string { return "guidance_entries" }
func (Tag) TableName() string           { return "tags" }
func (SearchQuery) TableName() string   { return "search_queries" }
func (PopularQuery) TableName() string  { return "popular_queries" }
func (SystemHealth) TableName() string  { return "system_health" }

// Model validation methods
func (d *Document) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("document title is required")
	}
	if d.URL == "" {
		return fmt.Errorf("document url is required")
	}
	return nil
}

func (g *GuidanceEntry) Validate() error {
	if g.DocumentID == 0 {
		return fmt.Errorf("document ID is required")
	}
	validKinds := map[string]bool{
		GuidanceWhenToUse:    true,
		GuidanceWhenNotToUse: true,
		GuidanceBestPractice: true,
		GuidanceDo:           true,
		GuidanceDont:         true,
		GuidanceCaveat:       true,
		GuidanceLimitation:   true,
		GuidanceNote:         true,
	}
	if !validKinds[g.Kind] {
		return fmt.Errorf("invalid guidance kind: %s", g.Kind)
	}
	return nil
}

func (sq *SearchQuery) Validate() error {
	if sq.QueryText == "" {
		return fmt.Errorf("query text is required")
	}
	if sq.ResponseTimeMs < 0 {
		return fmt.Errorf("response time cannot be negative")
	}
	return nil
}

// GORM hooks
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	return d.Validate()
}

func (d *Document) BeforeUpdate(tx *gorm.DB) error {
	return d.Validate()
}

func (g *GuidanceEntry) BeforeCreate(tx *gorm.DB) error {
	return g.Validate()
}

func (sq *SearchQuery) BeforeCreate(tx *gorm.DB) error {
	return sq.Validate()
}
