package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/velo-ui/knowledge/internal/models"
)

// maxCandidateCap bounds how many rows candidate retrieval may return no
// matter what the caller asks for.
const maxCandidateCap = 100

// DocumentRepositoryImpl implements DocumentRepository
type DocumentRepositoryImpl struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) models.DocumentRepository {
	return &DocumentRepositoryImpl{db: db}
}

func (r *DocumentRepositoryImpl) Create(doc *models.Document) error {
	return r.db.Create(doc).Error
}

func (r *DocumentRepositoryImpl) GetByID(id uint) (*models.Document, error) {
	var doc models.Document
	err := r.db.Preload("CodeExamples").Preload("Guidance").Preload("Tags").
		First(&doc, id).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepositoryImpl) GetByComponentKey(key string) (*models.Document, error) {
	var doc models.Document
	err := r.db.Preload("CodeExamples").Preload("Guidance").Preload("Tags").
		Where("component_key = ?", key).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetSiblings returns pages sharing the first three hierarchy segments
// with doc, excluding doc itself.
func (r *DocumentRepositoryImpl) GetSiblings(doc *models.Document) ([]models.Document, error) {
	segments := strings.Split(doc.HierarchyPath, "/")
	if len(segments) < 3 {
		return nil, nil
	}
	prefix := strings.Join(segments[:3], "/") + "/%"

	var siblings []models.Document
	err := r.db.Where("hierarchy_path LIKE ? AND id != ?", prefix, doc.ID).
		Order("hierarchy_path").
		Find(&siblings).Error
	return siblings, err
}

func (r *DocumentRepositoryImpl) GetAll() ([]models.Document, error) {
	var docs []models.Document
	err := r.db.Preload("Tags").Find(&docs).Error
	return docs, err
}

func (r *DocumentRepositoryImpl) Update(doc *models.Document) error {
	return r.db.Save(doc).Error
}

func (r *DocumentRepositoryImpl) Delete(id uint) error {
	return r.db.Delete(&models.Document{}, id).Error
}

// FetchCandidates performs the unordered OR-match retrieval the search
// pipeline scores afterwards. No relevance ordering happens here; rows
// come back in whatever order the store produces them.
func (r *DocumentRepositoryImpl) FetchCandidates(ctx context.Context, queries []string, filters models.SearchFilters, cap int) ([]models.Document, error) {
	if cap <= 0 || cap > maxCandidateCap {
		cap = maxCandidateCap
	}

	db := r.db.WithContext(ctx).
		Model(&models.Document{}).
		Distinct("documents.*").
		Joins("LEFT JOIN tags ON tags.document_id = documents.id")

	var conds []string
	var args []interface{}
	for _, q := range queries {
		q = strings.TrimSpace(strings.ToLower(q))
		if q == "" {
			continue
		}
		pattern := "%" + q + "%"
		conds = append(conds, "(LOWER(documents.title) LIKE ? OR LOWER(documents.component_name) LIKE ? OR LOWER(tags.tag) LIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}
	if len(conds) > 0 {
		db = db.Where(strings.Join(conds, " OR "), args...)
	}

	if filters.Category != "" {
		db = db.Where("documents.category = ?", filters.Category)
	}
	if filters.Tag != "" {
		db = db.Where("EXISTS (SELECT 1 FROM tags t WHERE t.document_id = documents.id AND t.tag = ?)", filters.Tag)
	}
	if filters.Complexity != "" {
		db = db.Where("EXISTS (SELECT 1 FROM code_examples e WHERE e.document_id = documents.id AND e.complexity = ?)", filters.Complexity)
	}
	if filters.RequiresJS != nil {
		sub := "EXISTS (SELECT 1 FROM tags t WHERE t.document_id = documents.id AND t.tag = 'requires-js')"
		if !*filters.RequiresJS {
			sub = "NOT " + sub
		}
		db = db.Where(sub)
	}

	var docs []models.Document
	err := db.Limit(cap).Preload("Tags").Find(&docs).Error
	return docs, err
}

// CodeExampleRepositoryImpl implements CodeExampleRepository
type CodeExampleRepositoryImpl struct {
	db *gorm.DB
}

func NewCodeExampleRepository(db *gorm.DB) models.CodeExampleRepository {
	return &CodeExampleRepositoryImpl{db: db}
}

func (r *CodeExampleRepositoryImpl) Create(example *models.CodeExample) error {
	return r.db.Create(example).Error
}

func (r *CodeExampleRepositoryImpl) GetByDocumentID(documentID uint) ([]models.CodeExample, error) {
	var examples []models.CodeExample
	err := r.db.Where("document_id = ?", documentID).
		Order("position").
		Find(&examples).Error
	return examples, err
}

func (r *CodeExampleRepositoryImpl) GetByComplexity(documentID uint, complexity string) ([]models.CodeExample, error) {
	var examples []models.CodeExample
	err := r.db.Where("document_id = ? AND complexity = ?", documentID, complexity).
		Order("position").
		Find(&examples).Error
	return examples, err
}

// GuidanceRepositoryImpl implements GuidanceRepository
type GuidanceRepositoryImpl struct {
	db *gorm.DB
}

func NewGuidanceRepository(db *gorm.DB) models.GuidanceRepository {
	return &GuidanceRepositoryImpl{db: db}
}

func (r *GuidanceRepositoryImpl) Create(entry *models.GuidanceEntry) error {
	return r.db.Create(entry).Error
}

func (r *GuidanceRepositoryImpl) GetByDocumentID(documentID uint) ([]models.GuidanceEntry, error) {
	var entries []models.GuidanceEntry
	err := r.db.Where("document_id = ?", documentID).
		Order("priority DESC").
		Find(&entries).Error
	return entries, err
}

func (r *GuidanceRepositoryImpl) GetByKind(documentID uint, kind string) ([]models.GuidanceEntry, error) {
	var entries []models.GuidanceEntry
	err := r.db.Where("document_id = ? AND kind = ?", documentID, kind).
		Order("priority DESC").
		Find(&entries).Error
	return entries, err
}

// SearchQueryRepositoryImpl implements SearchQueryRepository
type SearchQueryRepositoryImpl struct {
	db *gorm.DB
}

func NewSearchQueryRepository(db *gorm.DB) models.SearchQueryRepository {
	return &SearchQueryRepositoryImpl{db: db}
}

func (r *SearchQueryRepositoryImpl) Create(query *models.SearchQuery) error {
	return r.db.Create(query).Error
}

func (r *SearchQueryRepositoryImpl) GetRecentSearches(limit int) ([]models.SearchQuery, error) {
	var queries []models.SearchQuery
	err := r.db.Order("search_timestamp DESC").
		Limit(limit).
		Find(&queries).Error
	return queries, err
}

func (r *SearchQueryRepositoryImpl) GetBySession(session string) ([]models.SearchQuery, error) {
	var queries []models.SearchQuery
	err := r.db.Where("user_session = ?", session).
		Order("search_timestamp DESC").
		Find(&queries).Error
	return queries, err
}

// PopularQueryRepositoryImpl implements PopularQueryRepository
type PopularQueryRepositoryImpl struct {
	db *gorm.DB
}

func NewPopularQueryRepository(db *gorm.DB) models.PopularQueryRepository {
	return &PopularQueryRepositoryImpl{db: db}
}

func (r *PopularQueryRepositoryImpl) IncrementCount(queryText string) error {
	return r.db.Exec(`
		INSERT INTO popular_queries (query_text, search_count, last_searched, created_at, updated_at)
		VALUES (?, 1, NOW(), NOW(), NOW())
		ON CONFLICT (query_text)
		DO UPDATE SET
			search_count = popular_queries.search_count + 1,
			last_searched = NOW(),
			updated_at = NOW()
	`, queryText).Error
}

func (r *PopularQueryRepositoryImpl) GetTop(limit int) ([]models.PopularQuery, error) {
	var queries []models.PopularQuery
	err := r.db.Order("search_count DESC").
		Limit(limit).
		Find(&queries).Error
	return queries, err
}

func (r *PopularQueryRepositoryImpl) UpdateStats(queryText string, resultsCount float64, responseTime int) error {
	return r.db.Exec(`
		UPDATE popular_queries
		SET
			avg_results_count = (avg_results_count * (search_count - 1) + ?) / search_count,
			avg_response_time_ms = (avg_response_time_ms * (search_count - 1) + ?) / search_count,
			updated_at = NOW()
		WHERE query_text = ?
	`, resultsCount, responseTime, queryText).Error
}

// SystemHealthRepositoryImpl implements SystemHealthRepository
type SystemHealthRepositoryImpl struct {
	db *gorm.DB
}

func NewSystemHealthRepository(db *gorm.DB) models.SystemHealthRepository {
	return &SystemHealthRepositoryImpl{db: db}
}

func (r *SystemHealthRepositoryImpl) UpdateServiceHealth(serviceName, status string, responseTime int, errorMsg string) error {
	return r.db.Exec(`
		INSERT INTO system_health (service_name, status, response_time_ms, error_message, checked_at)
		VALUES (?, ?, ?, ?, NOW())
	`, serviceName, status, responseTime, errorMsg).Error
}

func (r *SystemHealthRepositoryImpl) GetServiceHealth(serviceName string) (*models.SystemHealth, error) {
	var health models.SystemHealth
	err := r.db.Where("service_name = ?", serviceName).
		Order("checked_at DESC").
		First(&health).Error
	if err != nil {
		return nil, err
	}
	return &health, nil
}

func (r *SystemHealthRepositoryImpl) GetAllServicesHealth() ([]models.SystemHealth, error) {
	var health []models.SystemHealth
	err := r.db.Raw(`
		SELECT DISTINCT ON (service_name) *
		FROM system_health
		ORDER BY service_name, checked_at DESC
	`).Scan(&health).Error
	return health, err
}

// RepositoryManager bundles all repositories
type RepositoryManager struct {
	Document     models.DocumentRepository
	CodeExample  models.CodeExampleRepository
	Guidance     models.GuidanceRepository
	SearchQuery  models.SearchQueryRepository
	PopularQuery models.PopularQueryRepository
	SystemHealth models.SystemHealthRepository
}

func NewRepositoryManager(db *gorm.DB) *RepositoryManager {
	return &RepositoryManager{
		Document:     NewDocumentRepository(db),
		CodeExample:  NewCodeExampleRepository(db),
		Guidance:     NewGuidanceRepository(db),
		SearchQuery:  NewSearchQueryRepository(db),
		PopularQuery: NewPopularQueryRepository(db),
		SystemHealth: NewSystemHealthRepository(db),
	}
}
