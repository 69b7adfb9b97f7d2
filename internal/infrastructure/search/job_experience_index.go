package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-hrms/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// JobExperienceIndex keeps job experiences searchable in Elasticsearch.
type JobExperienceIndex struct {
	ES      *elasticsearch.Client
	Index   string
	Timeout time.Duration
}

func NewJobExperienceIndex(es *elasticsearch.Client, index string) *JobExperienceIndex {
	return &JobExperienceIndex{ES: es, Index: index, Timeout: 3 * time.Second}
}

type jobExperienceDoc struct {
	ID            int64   `json:"id"`
	CandidateID   int64   `json:"candidate_id"`
	WorkplaceName string  `json:"workplace_name"`
	Position      string  `json:"position"`
	StartDate     string  `json:"start_date"`
	EndDate       *string `json:"end_date,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func toDoc(j entity.JobExperience) jobExperienceDoc {
	d := jobExperienceDoc{
		ID:            j.ID,
		CandidateID:   j.CandidateID,
		WorkplaceName: j.WorkplaceName,
		Position:      j.Position,
		StartDate:     j.StartDate.Format(dateLayout),
		CreatedAt:     j.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if j.EndDate != nil {
		s := j.EndDate.Format(dateLayout)
		d.EndDate = &s
	}
	return d
}

func (d jobExperienceDoc) entity() entity.JobExperience {
	j := entity.JobExperience{
		ID:            d.ID,
		CandidateID:   d.CandidateID,
		WorkplaceName: d.WorkplaceName,
		Position:      d.Position,
	}
	j.StartDate, _ = time.Parse(dateLayout, d.StartDate)
	j.CreatedAt, _ = time.Parse(time.RFC3339Nano, d.CreatedAt)
	if d.EndDate != nil {
		if t, err := time.Parse(dateLayout, *d.EndDate); err == nil {
			j.EndDate = &t
		}
	}
	return j
}

// Put indexes j under its database id.
func (x *JobExperienceIndex) Put(ctx context.Context, j entity.JobExperience) error {
	b, err := json.Marshal(toDoc(j))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      x.Index,
		DocumentID: strconv.FormatInt(j.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}

	c, cancel := context.WithTimeout(ctx, x.Timeout)
	defer cancel()

	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match over workplace name and position.
func (x *JobExperienceIndex) Search(ctx context.Context, q string, size int) ([]entity.JobExperience, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"workplace_name^2", "position"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, x.Timeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source jobExperienceDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.JobExperience, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source.entity())
	}
	return out, nil
}
