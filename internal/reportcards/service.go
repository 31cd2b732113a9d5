// Package reportcards orchestrates the report-card pipeline: extract the
// workbook, split by gender, build canonical records, fetch assets, fill
// one form document per gender group and store the outputs for download.
package reportcards

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reparper/reparper/internal/assets"
	"github.com/reparper/reparper/internal/catalog"
	"github.com/reparper/reparper/internal/config"
	"github.com/reparper/reparper/internal/export"
	"github.com/reparper/reparper/internal/extract"
	"github.com/reparper/reparper/internal/fill"
	"github.com/reparper/reparper/internal/record"
	"github.com/reparper/reparper/internal/split"
	"github.com/reparper/reparper/pkg/formdoc"
)

// Service runs the pipeline once per uploaded workbook.
type Service struct {
	extractor *extract.Extractor
	splitter  *split.Splitter
	builder   *record.Builder
	filler    *fill.Filler
	source    assets.Source
	loader    formdoc.Loader
	summary   *export.SummaryGenerator
	worksheet *export.WorksheetExporter
	store     *RunStore
	logger    *zap.Logger
}

// NewService wires the pipeline components.
func NewService(cfg config.ProcessingConfig, cat catalog.Catalog, source assets.Source, loader formdoc.Loader, store *RunStore, logger *zap.Logger) *Service {
	return &Service{
		extractor: extract.NewExtractor(logger),
		splitter:  split.NewSplitter(split.Options{StrictGender: cfg.StrictGender}, logger),
		builder:   record.NewBuilder(cat),
		filler:    fill.NewFiller(cat, fill.OverflowPolicy(cfg.OverflowPolicy), logger),
		source:    source,
		loader:    loader,
		summary:   export.NewSummaryGenerator(cat, export.DefaultSummaryOptions()),
		worksheet: export.NewWorksheetExporter(cat),
		store:     store,
		logger:    logger,
	}
}

// Generate runs the whole pipeline. Extraction and splitting failures
// halt before any PDF is produced; a fill failure in one gender document
// does not abort the other. The returned error is non-nil when any
// document failed, alongside whatever documents did get produced.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*Run, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Assets come from network storage; start fetching while the
	// workbook is processed. Everything must be in hand before filling.
	bundleCh := make(chan *assets.Bundle, 1)
	fetchErrCh := make(chan error, 1)
	go func() {
		bundle, err := s.source.FetchBundle(ctx, req.Grade)
		if err != nil {
			fetchErrCh <- err
			return
		}
		bundleCh <- bundle
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wb, err := extract.OpenWorkbook(req.Workbook)
	if err != nil {
		return nil, err
	}
	data, err := s.extractor.Extract(wb)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	groups, err := s.splitter.Split(data)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	femaleRecords := s.builder.Build(groups.Female)
	maleRecords := s.builder.Build(groups.Male)

	var bundle *assets.Bundle
	select {
	case bundle = <-bundleCh:
	case err := <-fetchErrCh:
		return nil, fmt.Errorf("failed to fetch template assets: %w", err)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	run := &Run{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
	}
	for _, id := range groups.Dropped {
		run.Warnings = append(run.Warnings, fmt.Sprintf("student %s skipped: unrecognized gender", id))
	}

	files, fillErr := s.fillDocuments(ctx, req, bundle, femaleRecords, maleRecords)
	run.Files = append(run.Files, files...)

	if len(run.Files) == 0 {
		if fillErr != nil {
			return nil, fillErr
		}
		return nil, errors.New("no students matched either gender group")
	}

	s.addSupplementaryFiles(run, req, femaleRecords, maleRecords)

	s.store.Put(run)
	return run, fillErr
}

// fillDocuments generates the two gender documents independently; one
// failing does not cancel the other.
func (s *Service) fillDocuments(ctx context.Context, req GenerateRequest, bundle *assets.Bundle, femaleRecords, maleRecords []record.StudentRecord) ([]GeneratedFile, error) {
	type job struct {
		gender  string
		records []record.StudentRecord
	}
	jobs := make([]job, 0, 2)
	if len(femaleRecords) > 0 {
		jobs = append(jobs, job{gender: split.Female, records: femaleRecords})
	}
	if len(maleRecords) > 0 {
		jobs = append(jobs, job{gender: split.Male, records: maleRecords})
	}

	files := make([]GeneratedFile, len(jobs))
	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		go func(i int, j job) {
			defer wg.Done()
			file, err := s.fillOne(ctx, req, bundle, j.gender, j.records)
			if err != nil {
				errs[i] = fmt.Errorf("%s document: %w", fill.GenderLabel(j.gender), err)
				return
			}
			files[i] = file
		}(i, j)
	}
	wg.Wait()

	out := make([]GeneratedFile, 0, len(jobs))
	for i := range jobs {
		if errs[i] == nil {
			out = append(out, files[i])
		} else {
			s.logger.Error("failed to generate document", zap.Error(errs[i]))
		}
	}
	return out, errors.Join(errs...)
}

func (s *Service) fillOne(ctx context.Context, req GenerateRequest, bundle *assets.Bundle, gender string, records []record.StudentRecord) (GeneratedFile, error) {
	params := fill.Params{
		Semester:    req.Semester,
		Grade:       req.Grade,
		ClassName:   req.ClassName(),
		Year:        req.Year,
		Gender:      gender,
		TeacherName: req.TeacherName,
		PublishDate: req.PublishDate,
	}

	doc, err := s.loader(bundle.Template)
	if err != nil {
		return GeneratedFile{}, err
	}

	fonts := fill.Fonts{
		Regular: bundle.RegularFont,
		Bold:    bundle.BoldFont,
		Title:   bundle.TitleFont,
	}
	if err := s.filler.Fill(ctx, doc, records, fonts, params); err != nil {
		return GeneratedFile{}, err
	}

	content, err := doc.Save()
	if err != nil {
		return GeneratedFile{}, err
	}

	name := fill.FileName(params)
	s.logger.Info("generated report cards",
		zap.String("file", name),
		zap.Int("students", len(records)))

	return GeneratedFile{Name: name, Size: len(content), Content: content}, nil
}

// addSupplementaryFiles attaches the summary PDF and records worksheet.
// Failures here are logged, never fatal: the report cards themselves are
// the deliverable.
func (s *Service) addSupplementaryFiles(run *Run, req GenerateRequest, femaleRecords, maleRecords []record.StudentRecord) {
	groups := make([]export.GroupRecords, 0, 2)
	if len(femaleRecords) > 0 {
		groups = append(groups, export.GroupRecords{Label: fill.GenderLabel(split.Female), Records: femaleRecords})
	}
	if len(maleRecords) > 0 {
		groups = append(groups, export.GroupRecords{Label: fill.GenderLabel(split.Male), Records: maleRecords})
	}

	title := fmt.Sprintf("Class %s", req.ClassName())

	if summary, err := s.summary.Generate(title, req.Semester, groups); err != nil {
		s.logger.Warn("failed to generate class summary", zap.Error(err))
	} else {
		name := fmt.Sprintf("%s S%s Summary %d.pdf", req.ClassName(), req.Semester, req.Year)
		run.Files = append(run.Files, GeneratedFile{Name: name, Size: len(summary), Content: summary})
	}

	if sheet, err := s.worksheet.Export(groups); err != nil {
		s.logger.Warn("failed to export records worksheet", zap.Error(err))
	} else {
		name := fmt.Sprintf("%s S%s Records %d.xlsx", req.ClassName(), req.Semester, req.Year)
		run.Files = append(run.Files, GeneratedFile{Name: name, Size: len(sheet), Content: sheet})
	}
}
