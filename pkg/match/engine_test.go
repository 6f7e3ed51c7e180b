package match

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suvarna009/resume-matcher/pkg/job"
	"github.com/suvarna009/resume-matcher/pkg/resume"
)

// --- in-memory фейки портов ---

type fakeJobRepo struct {
	mu    sync.Mutex
	items []job.Job
}

func (f *fakeJobRepo) Create(_ context.Context, j job.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, j)
	return nil
}

func (f *fakeJobRepo) Update(_ context.Context, j job.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == j.ID {
			f.items[i] = j
			return nil
		}
	}
	return errNotFound
}

func (f *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range f.items {
		if j.ID == id {
			return j, nil
		}
	}
	return job.Job{}, errNotFound
}

func (f *fakeJobRepo) List(ctx context.Context, _, _ int) ([]job.Job, error) { return f.All(ctx) }

func (f *fakeJobRepo) All(context.Context) ([]job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]job.Job, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeJobRepo) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.items)), nil
}

func (f *fakeJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

type fakeResumeRepo struct {
	mu    sync.Mutex
	items []resume.Resume
}

func (f *fakeResumeRepo) Create(_ context.Context, r resume.Resume) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, r)
	return nil
}

func (f *fakeResumeRepo) GetByID(_ context.Context, id uuid.UUID) (resume.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.items {
		if r.ID == id {
			return r, nil
		}
	}
	return resume.Resume{}, errNotFound
}

func (f *fakeResumeRepo) List(ctx context.Context, _, _ int) ([]resume.Resume, error) {
	return f.All(ctx)
}

func (f *fakeResumeRepo) All(context.Context) ([]resume.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]resume.Resume, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeResumeRepo) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.items)), nil
}

func (f *fakeResumeRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

// fakeMatchRepo повторяет replace-семантику настоящего репозитория:
// весь набор субъекта меняется атомарно под мьютексом.
type fakeMatchRepo struct {
	mu       sync.Mutex
	items    []Match
	replaces int
}

func (f *fakeMatchRepo) ReplaceForJob(_ context.Context, jobID uuid.UUID, matches []Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.items[:0]
	for _, m := range f.items {
		if m.JobID != jobID {
			kept = append(kept, m)
		}
	}
	f.items = append(kept, matches...)
	f.replaces++
	return nil
}

func (f *fakeMatchRepo) ReplaceForResume(_ context.Context, resumeID uuid.UUID, matches []Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.items[:0]
	for _, m := range f.items {
		if m.ResumeID != resumeID {
			kept = append(kept, m)
		}
	}
	f.items = append(kept, matches...)
	f.replaces++
	return nil
}

func (f *fakeMatchRepo) ListByJob(_ context.Context, jobID uuid.UUID, _, _ int) ([]Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Match
	for _, m := range f.items {
		if m.JobID == jobID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) ListByResume(_ context.Context, resumeID uuid.UUID, _, _ int) ([]Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Match
	for _, m := range f.items {
		if m.ResumeID == resumeID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) CountAll(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.items)), nil
}

var errNotFound = assert.AnError

// --- helpers ---

func newTestEngine(t *testing.T, jobs *fakeJobRepo, resumes *fakeResumeRepo, matches *fakeMatchRepo) *Engine {
	t.Helper()
	chain := NewChain(nil, LexicalStrategy{})
	return NewEngine(jobs, resumes, matches, chain, PolicyBalanced, 4, nil)
}

func testJob(title, desc string, required, preferred []string) job.Job {
	return job.Job{
		ID:              uuid.New(),
		Title:           title,
		Description:     desc,
		RequiredSkills:  required,
		PreferredSkills: preferred,
	}
}

func testResume(text string) resume.Resume {
	return resume.Resume{ID: uuid.New(), Filename: "cv.txt", Text: text}
}

// --- tests ---

func TestScorePair(t *testing.T) {
	e := newTestEngine(t, &fakeJobRepo{}, &fakeResumeRepo{}, &fakeMatchRepo{})
	j := testJob("Data Engineer", "We build python data pipelines with sql and airflow.",
		[]string{"python", "sql"}, []string{"airflow"})
	r := testResume("Senior python engineer. Built sql reporting and airflow DAGs for ETL pipelines.")

	m := e.ScorePair(context.Background(), j, r)

	assert.Equal(t, j.ID, m.JobID)
	assert.Equal(t, r.ID, m.ResumeID)
	assert.InDelta(t, 100.0, m.HardScore, 1e-9)
	assert.Greater(t, m.SoftScore, 0.0)
	assert.LessOrEqual(t, m.SoftScore, 100.0)
	assert.Equal(t, "lexical", m.SimStrategy)
	assert.Equal(t, PolicyBalanced.VerdictFor(m.CombinedScore), m.Verdict)
	assert.NotEmpty(t, m.Feedback)
	assert.NotNil(t, m.MatchedRequired)
	assert.NotNil(t, m.MissingPreferred)
}

func TestScorePairDegradesSimilarityToZero(t *testing.T) {
	e := newTestEngine(t, &fakeJobRepo{}, &fakeResumeRepo{}, &fakeMatchRepo{})
	// пустое резюме: lexical ярус отказывает на нулевом векторе
	j := testJob("Any", "some description text here", []string{"go"}, nil)
	r := testResume("")

	m := e.ScorePair(context.Background(), j, r)
	assert.Zero(t, m.SoftScore)
	assert.Equal(t, StrategyNone, m.SimStrategy)
	assert.Zero(t, m.HardScore)
	assert.Equal(t, "Low", m.Verdict)
}

func TestScorePairFallsBackToTitle(t *testing.T) {
	e := newTestEngine(t, &fakeJobRepo{}, &fakeResumeRepo{}, &fakeMatchRepo{})
	// описание пустое — текстом вакансии становится заголовок
	j := testJob("python developer", "", nil, nil)
	r := testResume("experienced python developer with services background")

	m := e.ScorePair(context.Background(), j, r)
	assert.Equal(t, "lexical", m.SimStrategy)
	assert.Greater(t, m.SoftScore, 0.0)
}

func TestRecomputeForJobReplacesWholeSet(t *testing.T) {
	jobs := &fakeJobRepo{}
	resumes := &fakeResumeRepo{}
	matches := &fakeMatchRepo{}
	e := newTestEngine(t, jobs, resumes, matches)

	j := testJob("Data Engineer", "python sql airflow pipelines", []string{"python"}, nil)
	require.NoError(t, jobs.Create(context.Background(), j))
	for _, text := range []string{
		"python engineer with airflow experience",
		"java developer",
		"sql analyst with python scripts",
	} {
		require.NoError(t, resumes.Create(context.Background(), testResume(text)))
	}

	require.NoError(t, e.RecomputeForJob(context.Background(), j.ID))

	got, err := matches.ListByJob(context.Background(), j.ID, 100, 0)
	require.NoError(t, err)
	assert.Len(t, got, 3, "one match per resume")

	// повторный пересчёт не накапливает записей
	require.NoError(t, e.RecomputeForJob(context.Background(), j.ID))
	again, err := matches.ListByJob(context.Background(), j.ID, 100, 0)
	require.NoError(t, err)
	assert.Len(t, again, 3)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	jobs := &fakeJobRepo{}
	resumes := &fakeResumeRepo{}
	matches := &fakeMatchRepo{}
	e := newTestEngine(t, jobs, resumes, matches)

	j := testJob("Backend", "go grpc postgres services", []string{"go", "postgres"}, []string{"grpc"})
	require.NoError(t, jobs.Create(context.Background(), j))
	r := testResume("go developer, postgres and grpc in production")
	require.NoError(t, resumes.Create(context.Background(), r))

	require.NoError(t, e.RecomputeForJob(context.Background(), j.ID))
	first, err := matches.ListByJob(context.Background(), j.ID, 100, 0)
	require.NoError(t, err)
	require.Len(t, first, 1)

	require.NoError(t, e.RecomputeForJob(context.Background(), j.ID))
	second, err := matches.ListByJob(context.Background(), j.ID, 100, 0)
	require.NoError(t, err)
	require.Len(t, second, 1)

	// при неизменных данных скоры воспроизводятся с точностью 1e-6
	assert.InDelta(t, first[0].HardScore, second[0].HardScore, 1e-6)
	assert.InDelta(t, first[0].SoftScore, second[0].SoftScore, 1e-6)
	assert.InDelta(t, first[0].CombinedScore, second[0].CombinedScore, 1e-6)
	assert.Equal(t, first[0].Verdict, second[0].Verdict)
	assert.Equal(t, first[0].Feedback, second[0].Feedback)
}

func TestRecomputeForResume(t *testing.T) {
	jobs := &fakeJobRepo{}
	resumes := &fakeResumeRepo{}
	matches := &fakeMatchRepo{}
	e := newTestEngine(t, jobs, resumes, matches)

	for _, title := range []string{"Backend", "Data", "Platform"} {
		require.NoError(t, jobs.Create(context.Background(),
			testJob(title, title+" engineering with go and sql", []string{"go"}, nil)))
	}
	r := testResume("go engineer, sql on the side")
	require.NoError(t, resumes.Create(context.Background(), r))

	require.NoError(t, e.RecomputeForResume(context.Background(), r.ID))

	got, err := matches.ListByResume(context.Background(), r.ID, 100, 0)
	require.NoError(t, err)
	assert.Len(t, got, 3, "one match per job")
}

func TestRecomputeForJobUnknownID(t *testing.T) {
	e := newTestEngine(t, &fakeJobRepo{}, &fakeResumeRepo{}, &fakeMatchRepo{})
	err := e.RecomputeForJob(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestRecomputeForJobNoResumes(t *testing.T) {
	jobs := &fakeJobRepo{}
	matches := &fakeMatchRepo{}
	e := newTestEngine(t, jobs, &fakeResumeRepo{}, matches)

	j := testJob("Backend", "go services", []string{"go"}, nil)
	require.NoError(t, jobs.Create(context.Background(), j))

	require.NoError(t, e.RecomputeForJob(context.Background(), j.ID))
	n, err := matches.CountAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, matches.replaces, "empty set still replaces the old one")
}

func TestRecomputeAll(t *testing.T) {
	jobs := &fakeJobRepo{}
	resumes := &fakeResumeRepo{}
	matches := &fakeMatchRepo{}
	e := newTestEngine(t, jobs, resumes, matches)

	for i := 0; i < 3; i++ {
		require.NoError(t, jobs.Create(context.Background(),
			testJob("Role", "python sql analytics", []string{"python"}, nil)))
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, resumes.Create(context.Background(), testResume("python analyst with sql")))
	}

	require.NoError(t, e.RecomputeAll(context.Background()))

	n, err := matches.CountAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(6), n, "jobs × resumes")
}

func TestRecomputeAllRespectsContext(t *testing.T) {
	jobs := &fakeJobRepo{}
	e := newTestEngine(t, jobs, &fakeResumeRepo{}, &fakeMatchRepo{})
	require.NoError(t, jobs.Create(context.Background(), testJob("Role", "text", nil, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, e.RecomputeAll(ctx), context.Canceled)
}

func TestConcurrentRecomputesSameJob(t *testing.T) {
	jobs := &fakeJobRepo{}
	resumes := &fakeResumeRepo{}
	matches := &fakeMatchRepo{}
	e := newTestEngine(t, jobs, resumes, matches)

	j := testJob("Backend", "go services with postgres", []string{"go"}, nil)
	require.NoError(t, jobs.Create(context.Background(), j))
	for i := 0; i < 5; i++ {
		require.NoError(t, resumes.Create(context.Background(), testResume("go developer")))
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, e.RecomputeForJob(context.Background(), j.ID))
		}()
	}
	wg.Wait()

	got, err := matches.ListByJob(context.Background(), j.ID, 100, 0)
	require.NoError(t, err)
	assert.Len(t, got, 5, "serialized replaces must not duplicate the set")
}
