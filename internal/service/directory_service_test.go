package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/audition-directory-api/internal/audition"
	"github.com/noah-isme/audition-directory-api/internal/dto"
	"github.com/noah-isme/audition-directory-api/internal/models"
	appErrors "github.com/noah-isme/audition-directory-api/pkg/errors"
)

type fakeCompanyRepo struct {
	companies  []models.Company
	listCalls  int
	lastFilter models.CompanyFilter
	err        error
}

func (f *fakeCompanyRepo) List(_ context.Context, filter models.CompanyFilter) ([]models.Company, error) {
	f.listCalls++
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Company, len(f.companies))
	copy(out, f.companies)
	return out, nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*models.Company, error) {
	for _, c := range f.companies {
		if c.ID == id {
			company := c
			return &company, nil
		}
	}
	return nil, sql.ErrNoRows
}

type fakeAuditionRepo struct {
	auditions []models.Audition
	err       error
}

func (f *fakeAuditionRepo) ListByCompanyIDs(_ context.Context, ids []string) ([]models.Audition, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []models.Audition
	for _, a := range f.auditions {
		if wanted[a.CompanyID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAuditionRepo) GetByID(_ context.Context, id string) (*models.Audition, error) {
	for _, a := range f.auditions {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

type memoryCache struct {
	items map[string][]byte
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := m.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.items[key] = raw
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func directoryFixture() (*fakeCompanyRepo, *fakeAuditionRepo) {
	companies := &fakeCompanyRepo{companies: []models.Company{
		{ID: "c-alpha", Name: "Alpha Ballet"},
		{ID: "c-bravo", Name: "Bravo Opera"},
		{ID: "c-charlie", Name: "Charlie Dance"},
	}}
	auditions := &fakeAuditionRepo{auditions: []models.Audition{
		{
			ID: "a-alpha", CompanyID: "c-alpha", Title: "Season closed",
			Deadline: models.Deadline{Mode: models.DeadlineModeFixedDate, Date: date(2025, 5, 1)},
			Schedule: models.Schedule{Mode: models.ScheduleModeSingleDate, Date: date(2025, 5, 10)},
		},
		{
			ID: "a-bravo", CompanyID: "c-bravo", Title: "Chorus",
			Deadline: models.Deadline{Mode: models.DeadlineModeFixedDate, Date: date(2025, 6, 10)},
			Schedule: models.Schedule{Mode: models.ScheduleModeSingleDate, Date: date(2025, 6, 20)},
		},
		{
			ID: "a-charlie", CompanyID: "c-charlie", Title: "Apprentices",
			Deadline: models.Deadline{Mode: models.DeadlineModeAsap},
			Schedule: models.Schedule{Mode: models.ScheduleModeSingleDate, Date: date(2025, 6, 2)},
		},
	}}
	return companies, auditions
}

func newDirectoryServiceForTest(companies *fakeCompanyRepo, auditions *fakeAuditionRepo, cache *CacheService) *DirectoryService {
	return NewDirectoryService(DirectoryServiceParams{
		Companies: companies,
		Auditions: auditions,
		Cache:     cache,
		Metrics:   NewMetricsService(),
		Logger:    zap.NewNop(),
		Config:    DirectoryServiceConfig{PageSize: 2},
		Now:       func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) },
	})
}

func TestDirectoryServiceListRanksUpcomingFirst(t *testing.T) {
	companies, auditions := directoryFixture()
	svc := newDirectoryServiceForTest(companies, auditions, nil)

	views, pagination, cacheHit, err := svc.List(context.Background(), dto.CompanyListRequest{PageSize: 10})
	require.NoError(t, err)
	assert.False(t, cacheHit)
	require.Len(t, views, 3)
	assert.Equal(t, []string{"c-bravo", "c-charlie", "c-alpha"}, []string{views[0].ID, views[1].ID, views[2].ID})

	require.NotNil(t, views[0].Rank)
	assert.Equal(t, 1, views[0].Rank.Tier)
	assert.Equal(t, "2025-06-10", views[0].Rank.Date)
	require.NotNil(t, views[1].Rank)
	assert.Equal(t, 2, views[1].Rank.Tier)
	assert.Nil(t, views[2].Rank)
	assert.Nil(t, views[2].RankKey)

	require.Len(t, views[2].Auditions, 1)
	require.NotNil(t, views[2].Auditions[0].Status)
	assert.Equal(t, audition.CategoryPastAudition, views[2].Auditions[0].Status.Category)
	assert.Equal(t, 3, pagination.TotalCount)
}

func TestDirectoryServiceListPaginatesAndFilters(t *testing.T) {
	companies, auditions := directoryFixture()
	svc := newDirectoryServiceForTest(companies, auditions, nil)

	views, pagination, _, err := svc.List(context.Background(), dto.CompanyListRequest{Page: 2})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "c-alpha", views[0].ID)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 2, pagination.PageSize)

	views, pagination, _, err = svc.List(context.Background(), dto.CompanyListRequest{UpcomingOnly: true, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, 2, pagination.TotalCount)

	views, _, _, err = svc.List(context.Background(), dto.CompanyListRequest{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestDirectoryServiceListSortByName(t *testing.T) {
	companies, auditions := directoryFixture()
	svc := newDirectoryServiceForTest(companies, auditions, nil)

	views, _, _, err := svc.List(context.Background(), dto.CompanyListRequest{Sort: dto.SortName, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "c-alpha", views[0].ID)
	assert.Equal(t, "c-charlie", views[2].ID)
}

func TestDirectoryServiceListPinnedToday(t *testing.T) {
	companies, auditions := directoryFixture()
	svc := newDirectoryServiceForTest(companies, auditions, nil)

	views, _, _, err := svc.List(context.Background(), dto.CompanyListRequest{Today: datePtr(2025, 6, 15), UpcomingOnly: true})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "c-bravo", views[0].ID)
	assert.Equal(t, 4, views[0].Rank.Tier)
	assert.Equal(t, audition.CategoryPostDeadline, views[0].Auditions[0].Status.Category)
}

func TestDirectoryServiceListValidation(t *testing.T) {
	companies, auditions := directoryFixture()
	svc := newDirectoryServiceForTest(companies, auditions, nil)

	_, _, _, err := svc.List(context.Background(), dto.CompanyListRequest{Sort: "popularity"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestDirectoryServiceListStoreFailure(t *testing.T) {
	companies, auditions := directoryFixture()
	companies.err = errors.New("connection refused")
	svc := newDirectoryServiceForTest(companies, auditions, nil)

	_, _, _, err := svc.List(context.Background(), dto.CompanyListRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestDirectoryServiceListUsesSnapshotCache(t *testing.T) {
	companies, auditions := directoryFixture()
	cache := NewCacheService(&memoryCache{items: map[string][]byte{}}, nil, time.Minute, zap.NewNop(), true)
	svc := newDirectoryServiceForTest(companies, auditions, cache)

	_, _, hit, err := svc.List(context.Background(), dto.CompanyListRequest{Search: " Opera "})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "opera", companies.lastFilter.Search)

	views, _, hit, err := svc.List(context.Background(), dto.CompanyListRequest{Search: "opera", Today: datePtr(2025, 6, 15)})
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, companies.listCalls)
	require.NotEmpty(t, views)
	assert.Equal(t, "c-bravo", views[0].ID)
	assert.Equal(t, 4, views[0].Rank.Tier)
}

func TestDirectoryServiceTodayUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	svc := NewDirectoryService(DirectoryServiceParams{
		Config: DirectoryServiceConfig{Location: tokyo},
		Now:    func() time.Time { return time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC) },
	})

	assert.True(t, date(2025, 6, 2).Equal(svc.Today(nil)))
	assert.True(t, date(2025, 7, 4).Equal(svc.Today(datePtr(2025, 7, 4))))
}

func TestDirectoryServiceGetCompany(t *testing.T) {
	companies, auditions := directoryFixture()
	svc := newDirectoryServiceForTest(companies, auditions, nil)

	view, err := svc.GetCompany(context.Background(), "c-charlie", nil)
	require.NoError(t, err)
	assert.Equal(t, "Charlie Dance", view.Name)
	require.NotNil(t, view.RankKey)
	assert.Equal(t, 2*audition.BucketSize+date(2025, 6, 2).UnixMilli(), *view.RankKey)
	require.Len(t, view.Auditions, 1)
	assert.Equal(t, audition.CategoryOpenCall, view.Auditions[0].Status.Category)

	_, err = svc.GetCompany(context.Background(), "missing", nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDirectoryServiceGetAudition(t *testing.T) {
	companies, auditions := directoryFixture()
	svc := newDirectoryServiceForTest(companies, auditions, nil)

	view, err := svc.GetAudition(context.Background(), "a-alpha", nil)
	require.NoError(t, err)
	assert.Equal(t, "FIXED_DATE", view.DeadlineMode)
	require.NotNil(t, view.DeadlineDate)
	assert.Equal(t, "2025-05-01", *view.DeadlineDate)
	assert.Nil(t, view.Rank)

	_, err = svc.GetAudition(context.Background(), "missing", nil)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestDirectoryServiceEvaluate(t *testing.T) {
	svc := newDirectoryServiceForTest(&fakeCompanyRepo{}, &fakeAuditionRepo{}, nil)

	resp, err := svc.Evaluate(context.Background(), dto.EvaluateAuditionRequest{
		AuditionInput: dto.AuditionInput{
			DeadlineMode:         "asap",
			AuditionScheduleMode: "various_dates",
			ScheduleEntries: []dto.ScheduleEntryInput{
				{Label: "Day one", Date: "2025-05-30"},
				{Label: "Day two", Date: "2025-06-04"},
				{Label: "Callbacks"},
			},
		},
		Today: "2025-06-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", resp.Today)
	require.NotNil(t, resp.Audition.Status)
	assert.Equal(t, audition.CategoryOpenCall, resp.Audition.Status.Category)
	assert.Equal(t, "Open call", resp.Audition.Status.Label)
	require.NotNil(t, resp.Audition.Rank)
	assert.Equal(t, 2, resp.Audition.Rank.Tier)
	assert.Equal(t, "2025-06-04", resp.Audition.Rank.Date)
	require.Len(t, resp.Audition.ScheduleEntries, 3)
	assert.Nil(t, resp.Audition.ScheduleEntries[2].Date)
}

func TestDirectoryServiceEvaluateLegacyFallback(t *testing.T) {
	svc := newDirectoryServiceForTest(&fakeCompanyRepo{}, &fakeAuditionRepo{}, nil)

	resp, err := svc.Evaluate(context.Background(), dto.EvaluateAuditionRequest{
		AuditionInput: dto.AuditionInput{DeadlineDate: "2025-05-20"},
		Today:         "2025-06-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "FIXED_DATE", resp.Audition.DeadlineMode)
	require.NotNil(t, resp.Audition.Status)
	assert.Equal(t, audition.CategoryPastAudition, resp.Audition.Status.Category)
	assert.Nil(t, resp.Audition.Rank)
}

func TestDirectoryServiceEvaluateRejectsInvalidInput(t *testing.T) {
	svc := newDirectoryServiceForTest(&fakeCompanyRepo{}, &fakeAuditionRepo{}, nil)

	cases := []dto.EvaluateAuditionRequest{
		{AuditionInput: dto.AuditionInput{DeadlineMode: "whenever"}},
		{AuditionInput: dto.AuditionInput{AuditionScheduleMode: "monthly"}},
		{AuditionInput: dto.AuditionInput{DeadlineDate: "10/06/2025"}},
		{Today: "tomorrow"},
	}
	for _, req := range cases {
		_, err := svc.Evaluate(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestCompanyFromInput(t *testing.T) {
	company := CompanyFromInput(dto.CompanyInput{
		ID:   "c-1",
		Name: "Delta",
		Auditions: []dto.AuditionInput{
			{DeadlineMode: "ALWAYS_OPEN", AuditionScheduleMode: "TO_BE_ARRANGED", ScheduleNote: "by appointment"},
		},
	})

	require.Len(t, company.Auditions, 1)
	assert.Equal(t, "c-1", company.Auditions[0].CompanyID)
	assert.Equal(t, models.DeadlineModeAlwaysOpen, company.Auditions[0].Deadline.Mode)
	assert.Equal(t, "by appointment", company.Auditions[0].Schedule.Note)
}
