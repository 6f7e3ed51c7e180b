package match

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/suvarna009/resume-matcher/pkg/job"
	"github.com/suvarna009/resume-matcher/pkg/nlp"
	"github.com/suvarna009/resume-matcher/pkg/resume"
)

const defaultWorkers = 4

// Engine — оркестратор матчинга: скоринг пары и пересчёт наборов матчей.
//
// Скоринг одной пары — чистое вычисление без побочных эффектов, поэтому
// пары внутри одного пересчёта считаются параллельно ограниченным пулом.
// Замена набора для одного субъекта (вакансии или резюме) сериализуется
// помьютексно по ключу субъекта и пишется одной транзакцией репозитория:
// старые и новые матчи никогда не сосуществуют для читателя.
type Engine struct {
	jobs    job.Repository
	resumes resume.Repository
	matches Repository
	sim     *Chain
	policy  Policy
	workers int
	log     *zap.Logger

	locks sync.Map // uuid.UUID -> *sync.Mutex, по субъекту пересчёта
}

func NewEngine(jobs job.Repository, resumes resume.Repository, matches Repository, sim *Chain, policy Policy, workers int, log *zap.Logger) *Engine {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		jobs:    jobs,
		resumes: resumes,
		matches: matches,
		sim:     sim,
		policy:  policy,
		workers: workers,
		log:     log,
	}
}

// ScorePair считает Match для пары без сохранения — используется и пулом
// пересчёта, и ad hoc запросами «проверь моё резюме против вакансии».
func (e *Engine) ScorePair(ctx context.Context, j job.Job, r resume.Resume) Match {
	jobText := nlp.Normalize(j.Description)
	if jobText == "" {
		jobText = nlp.Normalize(j.Title)
	}
	resumeText := nlp.Normalize(r.Text)

	hard := MatchSkills(j.RequiredSkills, j.PreferredSkills, resumeText)
	sim := e.sim.Score(ctx, jobText, resumeText)
	if sim.Strategy == StrategyNone {
		e.log.Warn("similarity degraded to zero for pair",
			zap.String("job_id", j.ID.String()),
			zap.String("resume_id", r.ID.String()),
		)
	}

	combined := Combine(hard.Score, sim.Score, e.policy)
	feedback := Feedback(FeedbackInput{
		Combined:         combined,
		SoftScore:        sim.Score,
		MissingRequired:  hard.MissingRequired,
		MissingPreferred: hard.MissingPreferred,
		WordCount:        nlp.WordCount(r.Text),
		WithExamples:     true,
	})

	return Match{
		ID:               uuid.New(),
		JobID:            j.ID,
		ResumeID:         r.ID,
		HardScore:        round2(hard.Score * 100),
		SoftScore:        round2(sim.Score * 100),
		CombinedScore:    combined,
		Verdict:          e.policy.VerdictFor(combined),
		MatchedRequired:  hard.MatchedRequired,
		MissingRequired:  hard.MissingRequired,
		MatchedPreferred: hard.MatchedPreferred,
		MissingPreferred: hard.MissingPreferred,
		Feedback:         strings.Join(feedback, "\n"),
		SimStrategy:      sim.Strategy,
		CreatedAt:        time.Now().UTC(),
	}
}

// RecomputeForJob заменяет весь набор матчей вакансии на свежий,
// посчитанный против всех резюме.
func (e *Engine) RecomputeForJob(ctx context.Context, jobID uuid.UUID) error {
	unlock := e.lock(jobID)
	defer unlock()

	j, err := e.jobs.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("load job: %w", err)
	}
	resumes, err := e.resumes.All(ctx)
	if err != nil {
		return fmt.Errorf("load resumes: %w", err)
	}

	matches := make([]Match, len(resumes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, r := range resumes {
		i, r := i, r
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			matches[i] = e.ScorePair(gctx, j, r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("score pairs for job %s: %w", jobID, err)
	}

	if err := e.matches.ReplaceForJob(ctx, jobID, matches); err != nil {
		return fmt.Errorf("replace matches for job %s: %w", jobID, err)
	}
	e.log.Info("recomputed matches for job",
		zap.String("job_id", jobID.String()),
		zap.Int("matches", len(matches)),
	)
	return nil
}

// RecomputeForResume — симметричный пересчёт: одно резюме против всех вакансий.
func (e *Engine) RecomputeForResume(ctx context.Context, resumeID uuid.UUID) error {
	unlock := e.lock(resumeID)
	defer unlock()

	r, err := e.resumes.GetByID(ctx, resumeID)
	if err != nil {
		return fmt.Errorf("load resume: %w", err)
	}
	jobs, err := e.jobs.All(ctx)
	if err != nil {
		return fmt.Errorf("load jobs: %w", err)
	}

	matches := make([]Match, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			matches[i] = e.ScorePair(gctx, j, r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("score pairs for resume %s: %w", resumeID, err)
	}

	if err := e.matches.ReplaceForResume(ctx, resumeID, matches); err != nil {
		return fmt.Errorf("replace matches for resume %s: %w", resumeID, err)
	}
	e.log.Info("recomputed matches for resume",
		zap.String("resume_id", resumeID.String()),
		zap.Int("matches", len(matches)),
	)
	return nil
}

// RecomputeAll прогоняет пересчёт по каждой вакансии. Идемпотентен при
// неизменных данных. Прерывание контекста оставляет уже заменённые наборы
// на месте — частично выполненный обход является корректным конечным
// состоянием, а не сбоем.
func (e *Engine) RecomputeAll(ctx context.Context) error {
	jobs, err := e.jobs.All(ctx)
	if err != nil {
		return fmt.Errorf("load jobs: %w", err)
	}
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.RecomputeForJob(ctx, j.ID); err != nil {
			return err
		}
	}
	e.log.Info("full recompute sweep finished", zap.Int("jobs", len(jobs)))
	return nil
}

// lock сериализует конкурирующие пересчёты одного субъекта.
// Пересчёты разных субъектов независимы и идут параллельно.
func (e *Engine) lock(subject uuid.UUID) func() {
	v, _ := e.locks.LoadOrStore(subject, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
