package docpipe

import (
	"context"
	"sync"
)

// Upload is one submitted file, read fully into memory by the handler.
type Upload struct {
	Filename string
	Data     []byte
}

// AggregateTrends runs the per-file pipeline (classify, extract, biomarker
// extraction) over every upload and merges the results in input order.
//
// Files are independent, so they are processed by a bounded worker pool; a
// failing file is skipped without disturbing its siblings. Files that fail
// before reaching the extractor (unsupported format, unreadable text) are
// omitted; files whose extraction service call comes back empty are retained
// with empty metrics so the caller can see them.
func (p *Pipeline) AggregateTrends(ctx context.Context, files []Upload) []TrendEntry {
	results := make([]*TrendEntry, len(files))

	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(idx int, file Upload) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[idx] = p.processTrendFile(ctx, file)
		}(i, f)
	}
	wg.Wait()

	report := make([]TrendEntry, 0, len(files))
	for _, entry := range results {
		if entry != nil {
			report = append(report, *entry)
		}
	}
	return report
}

func (p *Pipeline) processTrendFile(ctx context.Context, file Upload) *TrendEntry {
	cls := Detect(file.Filename, file.Data)
	text, err := p.ExtractText(ctx, cls, file.Data)
	if err != nil {
		p.log.Warn().Err(err).Str("filename", file.Filename).Msg("trend file skipped")
		return nil
	}

	entry := p.ExtractBiomarkers(ctx, text)
	entry.Filename = file.Filename
	return &entry
}
