package scrape

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/reviews-cli/internal/dates"
	"github.com/sells-group/reviews-cli/internal/model"
)

// jobDescriptor is the wire shape of one job entry, accepted singly or as
// an ordered list, in JSON or YAML.
type jobDescriptor struct {
	URL       string `json:"url" yaml:"url"`
	StartDate string `json:"start_date" yaml:"start_date"`
	EndDate   string `json:"end_date" yaml:"end_date"`
}

// LoadJobs decodes a job file into scrape jobs. Entries missing any of the
// three required fields, or carrying unparseable dates, are skipped with a
// warning; the rest of the batch continues.
func LoadJobs(data []byte) ([]model.ScrapeJob, error) {
	descs, err := decodeDescriptors(data)
	if err != nil {
		return nil, err
	}

	jobs := make([]model.ScrapeJob, 0, len(descs))
	for i, d := range descs {
		if d.URL == "" || d.StartDate == "" || d.EndDate == "" {
			zap.L().Warn("skipping job descriptor with missing fields",
				zap.Int("index", i),
				zap.String("url", d.URL),
			)
			continue
		}
		start, okStart := dates.ResolveAbsolute(d.StartDate)
		end, okEnd := dates.ResolveAbsolute(d.EndDate)
		if !okStart || !okEnd {
			zap.L().Warn("skipping job descriptor with unparseable dates",
				zap.Int("index", i),
				zap.String("start_date", d.StartDate),
				zap.String("end_date", d.EndDate),
			)
			continue
		}
		jobs = append(jobs, model.ScrapeJob{URL: d.URL, StartDate: start, EndDate: end})
	}
	return jobs, nil
}

func decodeDescriptors(data []byte) ([]jobDescriptor, error) {
	var list []jobDescriptor
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var single jobDescriptor
	if err := json.Unmarshal(data, &single); err == nil {
		return []jobDescriptor{single}, nil
	}
	if err := yaml.Unmarshal(data, &list); err == nil && list != nil {
		return list, nil
	}
	if err := yaml.Unmarshal(data, &single); err == nil && single != (jobDescriptor{}) {
		return []jobDescriptor{single}, nil
	}
	return nil, eris.New("scrape: job file is neither a JSON nor a YAML descriptor list")
}
