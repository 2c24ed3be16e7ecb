// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package translate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/equinor/dsis-schemas/internal/compile"
	"github.com/equinor/dsis-schemas/internal/jschema"
	"github.com/equinor/dsis-schemas/internal/modindex"
	"golang.org/x/sync/errgroup"
)

// ModelsDirName is the directory under the output root that holds the
// generated family packages.
const ModelsDirName = "models"

// Options configure a corpus generation run.
type Options struct {
	Registry   *jschema.Registry
	Translator Translator

	// OutputDir is the root the models tree is written under.
	OutputDir string

	// Workers bounds the generation pool; <= 0 means one worker per CPU.
	Workers int

	// FailFast stops the run at the first schema failure instead of
	// collecting failures across the whole corpus.
	FailFast bool
}

// Report aggregates the outcome of a corpus run. Schemas fail independently:
// one bad document never blocks the rest of the corpus unless FailFast is set.
type Report struct {
	// Models counts successfully generated model files.
	Models int

	// Files lists every written path, sorted.
	Files []string

	// Failures maps a schema id (or title, when the schema carries no id)
	// to the error that stopped it.
	Failures map[string]error
}

// Err summarizes the failures, or returns nil for a clean run.
func (r *Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return fmt.Errorf("failed to generate %d of %d models", len(r.Failures), r.Models+len(r.Failures))
}

// FailedIDs returns the failed schema ids, sorted.
func (r *Report) FailedIDs() []string {
	ids := make([]string, 0, len(r.Failures))
	for id := range r.Failures {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// job is one schema document with its claimed model and module names.
type job struct {
	doc    *jschema.Document
	model  string
	module string
}

// result is the outcome of generating one document.
type result struct {
	job  job
	path string
	err  error
}

// schemaError carries the failing document's identity out of a fail-fast
// worker.
type schemaError struct {
	key string
	err error
}

func (e *schemaError) Error() string { return fmt.Sprintf("%s: %v", e.key, e.err) }

func (e *schemaError) Unwrap() error { return e.err }

// Run generates model files for every schema in the registry using the
// configured translator. Module names are claimed up front in title order,
// so naming conflicts resolve the same way on every run; generation itself
// fans out across a worker pool. The returned error reports infrastructure
// problems (output directories, index rendering); per-schema failures land
// in the report.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Registry == nil {
		return nil, errors.New("translate: registry is required")
	}
	if opts.Translator == nil {
		return nil, errors.New("translate: translator is required")
	}
	if opts.OutputDir == "" {
		return nil, errors.New("translate: output directory is required")
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	report := &Report{Failures: make(map[string]error)}
	defer func() { sort.Strings(report.Files) }()
	index := modindex.New()

	if ix, ok := opts.Translator.(Indexer); ok {
		for _, family := range jschema.Families() {
			for _, module := range ix.ReservedModules() {
				index.Reserve(family, module)
			}
		}
	}

	// Claim pass. Serial and title-ordered, so when two titles collide on a
	// module name the winner is stable across runs.
	var jobs []job
	for _, family := range jschema.Families() {
		for _, doc := range opts.Registry.Family(family) {
			model := compile.ClassName(family, doc.Title)
			module := compile.ModuleName(model)
			if err := index.Claim(family, module, model, doc.Title); err != nil {
				report.Failures[docKey(doc)] = err
				if opts.FailFast {
					return report, nil
				}
				continue
			}
			jobs = append(jobs, job{doc: doc, model: model, module: module})
		}
	}
	if len(jobs) == 0 {
		return report, nil
	}

	familyDirs := make(map[jschema.Family]string)
	for _, j := range jobs {
		f := j.doc.Family
		if _, ok := familyDirs[f]; ok {
			continue
		}
		dir := filepath.Join(opts.OutputDir, ModelsDirName, string(f))
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return report, fmt.Errorf("failed to create output directory: %w", err)
		}
		familyDirs[f] = dir
	}

	builder := compile.NewBuilder(opts.Registry, opts.Translator.Profile(), opts.Translator.Resolver())

	g, runCtx := errgroup.WithContext(ctx)

	tasks := make(chan job)
	g.Go(func() error {
		defer close(tasks)
		for _, j := range jobs {
			select {
			case <-runCtx.Done():
				return nil
			case tasks <- j:
			}
		}
		return nil
	})

	results := make(chan result)
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		g.Go(func() error {
			defer wg.Done()
			for {
				var j job
				var ok bool
				select {
				case <-runCtx.Done():
					return nil
				case j, ok = <-tasks:
					if !ok {
						return nil
					}
				}

				res := generate(builder, opts.Translator, familyDirs[j.doc.Family], j)
				if res.err != nil && opts.FailFast {
					return &schemaError{key: docKey(j.doc), err: res.err}
				}
				select {
				case results <- res:
				case <-runCtx.Done():
					return nil
				}
			}
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// Gather in a single goroutine; the index needs no locking here beyond
	// its own.
	for res := range results {
		if res.err != nil {
			report.Failures[docKey(res.job.doc)] = res.err
			index.Release(res.job.doc.Family, res.job.module)
			continue
		}
		report.Models++
		report.Files = append(report.Files, res.path)
	}

	if err := g.Wait(); err != nil {
		var se *schemaError
		if errors.As(err, &se) {
			report.Failures[se.key] = se.err
			return report, nil
		}
		return report, err
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	if err := writeIndexes(opts, index, report); err != nil {
		return report, err
	}
	return report, nil
}

// writeIndexes emits the per-family and root index files for translators
// that produce them. The index only covers models whose files were written.
func writeIndexes(opts Options, index *modindex.Index, report *Report) error {
	ix, ok := opts.Translator.(Indexer)
	if !ok || index.Len() == 0 {
		return nil
	}

	for _, family := range index.Families() {
		files, err := ix.IndexFiles(family, index.Family(family))
		if err != nil {
			return fmt.Errorf("failed to render %s index: %w", family, err)
		}
		dir := filepath.Join(opts.OutputDir, ModelsDirName, string(family))
		if err := writeFiles(dir, files, report); err != nil {
			return err
		}
	}

	files, err := ix.RootFiles(index.Exports())
	if err != nil {
		return fmt.Errorf("failed to render root index: %w", err)
	}
	return writeFiles(filepath.Join(opts.OutputDir, ModelsDirName), files, report)
}

func writeFiles(dir string, files []File, report *Report) error {
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, f.Data, 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		report.Files = append(report.Files, path)
	}
	return nil
}

// generate runs the per-schema pipeline: build the model spec, render it,
// write the file.
func generate(builder *compile.Builder, tr Translator, dir string, j job) result {
	spec, err := builder.Build(j.doc)
	if err != nil {
		return result{job: j, err: err}
	}

	data, err := tr.Translate(spec)
	if err != nil {
		return result{job: j, err: err}
	}

	path := filepath.Join(dir, spec.Module+tr.FileExtension())
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return result{job: j, err: err}
	}
	return result{job: j, path: path}
}

func docKey(doc *jschema.Document) string {
	if doc.ID != "" {
		return doc.ID
	}
	return doc.Title
}
