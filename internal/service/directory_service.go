package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/audition-directory-api/internal/audition"
	"github.com/noah-isme/audition-directory-api/internal/dto"
	"github.com/noah-isme/audition-directory-api/internal/models"
	appErrors "github.com/noah-isme/audition-directory-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type companyReader interface {
	List(ctx context.Context, filter models.CompanyFilter) ([]models.Company, error)
	GetByID(ctx context.Context, id string) (*models.Company, error)
}

type auditionReader interface {
	ListByCompanyIDs(ctx context.Context, companyIDs []string) ([]models.Audition, error)
	GetByID(ctx context.Context, id string) (*models.Audition, error)
}

// DirectoryServiceConfig tunes directory behaviour.
type DirectoryServiceConfig struct {
	Location *time.Location
	CacheTTL time.Duration
	PageSize int
}

// DirectoryServiceParams groups constructor dependencies.
type DirectoryServiceParams struct {
	Companies companyReader
	Auditions auditionReader
	Cache     *CacheService
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
	Config    DirectoryServiceConfig
	Now       func() time.Time
}

// DirectoryService lists companies and auditions with their derived status and rank.
// Derived values are recomputed on every call; only raw records are cached.
type DirectoryService struct {
	companies companyReader
	auditions auditionReader
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	cfg       DirectoryServiceConfig
}

// NewDirectoryService constructs the service.
func NewDirectoryService(params DirectoryServiceParams) *DirectoryService {
	cfg := params.Config
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	RegisterAuditionValidations(validate)
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &DirectoryService{
		companies: params.Companies,
		auditions: params.Auditions,
		cache:     params.Cache,
		metrics:   params.Metrics,
		validator: validate,
		logger:    logger,
		now:       now,
		cfg:       cfg,
	}
}

// RegisterAuditionValidations adds the deadline_mode and schedule_mode tags.
func RegisterAuditionValidations(validate *validator.Validate) {
	_ = validate.RegisterValidation("deadline_mode", func(fl validator.FieldLevel) bool {
		return models.ParseDeadlineMode(fl.Field().String()) != models.DeadlineModeNone
	})
	_ = validate.RegisterValidation("schedule_mode", func(fl validator.FieldLevel) bool {
		return models.ParseScheduleMode(fl.Field().String()) != models.ScheduleModeNone
	})
}

// Today resolves the reference date for one request: the pinned date when
// given, otherwise the current calendar day in the configured location.
func (s *DirectoryService) Today(pinned *time.Time) time.Time {
	if pinned != nil {
		return audition.DateOf(*pinned)
	}
	return audition.DateOf(s.now().In(s.cfg.Location))
}

// List returns one page of the directory. The boolean reports whether the raw
// records came from cache.
func (s *DirectoryService) List(ctx context.Context, req dto.CompanyListRequest) ([]dto.CompanyView, *models.Pagination, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query")
	}
	today := s.Today(req.Today)

	ranked, cacheHit, err := s.Ranked(ctx, req, today)
	if err != nil {
		return nil, nil, false, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.PageSize
	if size <= 0 {
		size = s.cfg.PageSize
	}
	total := len(ranked)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	views := make([]dto.CompanyView, 0, end-start)
	for _, r := range ranked[start:end] {
		views = append(views, s.companyView(r, today))
	}
	return views, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, cacheHit, nil
}

// Ranked loads the directory and orders it for the given reference date.
func (s *DirectoryService) Ranked(ctx context.Context, req dto.CompanyListRequest, today time.Time) ([]audition.Ranked, bool, error) {
	companies, cacheHit, err := s.loadDirectory(ctx, req.Search)
	if err != nil {
		return nil, false, err
	}

	ranked := audition.Rank(companies, today)
	if req.Sort == "" || req.Sort == dto.SortUpcoming {
		audition.SortRanked(ranked)
	}
	if req.UpcomingOnly {
		ranked = audition.FilterRanked(ranked)
	}
	return ranked, cacheHit, nil
}

// GetCompany returns one company with its auditions.
func (s *DirectoryService) GetCompany(ctx context.Context, id string, pinned *time.Time) (*dto.CompanyView, error) {
	start := time.Now()
	company, err := s.companies.GetByID(ctx, id)
	s.metrics.ObserveDBQuery("companies.get", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "company not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load company")
	}

	start = time.Now()
	auditions, err := s.auditions.ListByCompanyIDs(ctx, []string{company.ID})
	s.metrics.ObserveDBQuery("auditions.list", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load auditions")
	}
	company.Auditions = auditions

	today := s.Today(pinned)
	key, ok := audition.RankKeyForCompany(*company, today)
	view := s.companyView(audition.Ranked{Company: *company, Key: key, HasKey: ok}, today)
	return &view, nil
}

// GetAudition returns one audition with its derived status and rank.
func (s *DirectoryService) GetAudition(ctx context.Context, id string, pinned *time.Time) (*dto.AuditionView, error) {
	start := time.Now()
	a, err := s.auditions.GetByID(ctx, id)
	s.metrics.ObserveDBQuery("auditions.get", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "audition not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load audition")
	}
	view := s.auditionView(*a, s.Today(pinned))
	return &view, nil
}

// Evaluate classifies and ranks an audition supplied in its raw shape.
func (s *DirectoryService) Evaluate(_ context.Context, req dto.EvaluateAuditionRequest) (*dto.EvaluateAuditionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid audition")
	}
	today := s.Today(models.ParseDate(req.Today))
	view := s.auditionView(AuditionFromInput(req.AuditionInput), today)
	return &dto.EvaluateAuditionResponse{Today: today.Format(dateLayout), Audition: view}, nil
}

func (s *DirectoryService) loadDirectory(ctx context.Context, search string) ([]models.Company, bool, error) {
	search = strings.ToLower(strings.TrimSpace(search))
	cacheKey := "companies:" + search
	var cached []models.Company
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, true, nil
	}

	start := time.Now()
	companies, err := s.companies.List(ctx, models.CompanyFilter{Search: search})
	s.metrics.ObserveDBQuery("companies.list", time.Since(start))
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list companies")
	}

	ids := make([]string, len(companies))
	for i, c := range companies {
		ids[i] = c.ID
	}
	start = time.Now()
	auditions, err := s.auditions.ListByCompanyIDs(ctx, ids)
	s.metrics.ObserveDBQuery("auditions.list", time.Since(start))
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list auditions")
	}

	byCompany := make(map[string][]models.Audition, len(companies))
	for _, a := range auditions {
		byCompany[a.CompanyID] = append(byCompany[a.CompanyID], a)
	}
	for i := range companies {
		companies[i].Auditions = byCompany[companies[i].ID]
		if companies[i].Auditions == nil {
			companies[i].Auditions = []models.Audition{}
		}
	}

	s.logger.Debug("directory snapshot loaded", zap.String("search", search), zap.Int("companies", len(companies)), zap.Int("auditions", len(auditions)))
	s.cache.Set(ctx, cacheKey, companies, s.cfg.CacheTTL)
	return companies, false, nil
}

func (s *DirectoryService) companyView(r audition.Ranked, today time.Time) dto.CompanyView {
	view := dto.CompanyView{
		ID:          r.Company.ID,
		Name:        r.Company.Name,
		Description: r.Company.Description,
		Website:     r.Company.Website,
		Auditions:   make([]dto.AuditionView, 0, len(r.Company.Auditions)),
	}
	if r.HasKey {
		view.Rank = rankView(r.Key)
		view.RankKey = &view.Rank.Key
	}
	for _, a := range r.Company.Auditions {
		view.Auditions = append(view.Auditions, s.auditionView(a, today))
	}
	return view
}

func (s *DirectoryService) auditionView(a models.Audition, today time.Time) dto.AuditionView {
	view := AuditionViewOf(a, today)
	if view.Status != nil {
		s.metrics.RecordStatus(*view.Status, true)
	} else {
		s.metrics.RecordStatus(audition.Status{}, false)
	}
	return view
}

// AuditionViewOf renders an audition and its derived values for one reference date.
func AuditionViewOf(a models.Audition, today time.Time) dto.AuditionView {
	view := dto.AuditionView{
		ID:                   a.ID,
		CompanyID:            a.CompanyID,
		Title:                a.Title,
		DeadlineMode:         string(a.Deadline.Mode),
		AuditionScheduleMode: string(a.Schedule.Mode),
	}
	if a.Deadline.Mode == models.DeadlineModeFixedDate {
		view.DeadlineDate = formatDate(a.Deadline.Date)
	}
	switch a.Schedule.Mode {
	case models.ScheduleModeSingleDate:
		view.AuditionDate = formatDate(a.Schedule.Date)
	case models.ScheduleModeVariousDates:
		view.ScheduleEntries = make([]dto.ScheduleEntryView, len(a.Schedule.Entries))
		for i, entry := range a.Schedule.Entries {
			view.ScheduleEntries[i] = dto.ScheduleEntryView{Label: entry.Label}
			if entry.Date != nil {
				view.ScheduleEntries[i].Date = formatDate(*entry.Date)
			}
		}
	case models.ScheduleModeToBeArranged:
		if a.Schedule.Note != "" {
			note := a.Schedule.Note
			view.ScheduleNote = &note
		}
	}

	if status, ok := audition.Classify(a, today); ok {
		view.Status = &status
	}
	if key, ok := audition.RankKey(a, today); ok {
		view.Rank = rankView(key)
		view.RankKey = &view.Rank.Key
	}
	return view
}

// AuditionFromInput normalizes a raw audition. Malformed dates count as absent.
func AuditionFromInput(in dto.AuditionInput) models.Audition {
	entries := make([]models.ScheduleEntry, len(in.ScheduleEntries))
	for i, entry := range in.ScheduleEntries {
		entries[i] = models.ScheduleEntry{Label: entry.Label, Date: models.ParseDate(entry.Date)}
	}
	return models.Audition{
		ID:       in.ID,
		Title:    in.Title,
		Deadline: models.NewDeadline(optionalString(in.DeadlineMode), models.ParseDate(in.DeadlineDate)),
		Schedule: models.NewSchedule(optionalString(in.AuditionScheduleMode), models.ParseDate(in.AuditionDate), entries, optionalString(in.ScheduleNote)),
	}
}

// CompanyFromInput normalizes a raw company and its auditions.
func CompanyFromInput(in dto.CompanyInput) models.Company {
	company := models.Company{ID: in.ID, Name: in.Name, Auditions: make([]models.Audition, len(in.Auditions))}
	for i, a := range in.Auditions {
		company.Auditions[i] = AuditionFromInput(a)
		company.Auditions[i].CompanyID = in.ID
	}
	return company
}

func rankView(key audition.Key) *dto.RankView {
	return &dto.RankView{Tier: int(key.Tier), Date: key.At.Format(dateLayout), Key: key.Int64()}
}

func formatDate(t time.Time) *string {
	formatted := audition.DateOf(t).Format(dateLayout)
	return &formatted
}

func optionalString(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
