package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/ponytojas/go-roomalyzer/internal/models"
)

// DefaultTimeout matches how long a large ThingSpeak export can take to arrive
const DefaultTimeout = 1000 * time.Second

// ReadingSource is anything that can produce the reading set for one run
type ReadingSource interface {
	Readings(ctx context.Context) (models.ReadingSet, error)
}

// feedEnvelope is the top level of a ThingSpeak channel feed response
type feedEnvelope struct {
	Feeds *[]feedRecord `json:"feeds"`
}

// feedRecord is one ThingSpeak entry. field1 is temperature, field2 humidity.
type feedRecord struct {
	CreatedAt json.RawMessage `json:"created_at"`
	Field1    json.RawMessage `json:"field1"`
	Field2    json.RawMessage `json:"field2"`
}

// ThingSpeakSource fetches readings from a ThingSpeak channel feed endpoint
type ThingSpeakSource struct {
	URL    string
	Client *http.Client
}

// NewThingSpeakSource creates a source with its own HTTP client
func NewThingSpeakSource(url string, timeout time.Duration) *ThingSpeakSource {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ThingSpeakSource{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

// Readings implements ReadingSource
func (s *ThingSpeakSource) Readings(ctx context.Context) (models.ReadingSet, error) {
	return FetchReadings(ctx, s.Client, s.URL)
}

// FetchReadings issues a single GET against endpoint and returns the cleaned readings
func FetchReadings(ctx context.Context, client *http.Client, endpoint string) (models.ReadingSet, error) {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", models.ErrRetrieval, err)
	}

	log.Printf("Fetching readings from %s", endpoint)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", models.ErrRetrieval, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: GET %s: unexpected status %s", models.ErrRetrieval, endpoint, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", models.ErrRetrieval, err)
	}

	readings, err := ParseFeed(body)
	if err != nil {
		return nil, err
	}
	log.Printf("Fetched %d valid readings", len(readings))
	return readings, nil
}

// ParseFeed decodes a ThingSpeak feed document and cleans its records
func ParseFeed(body []byte) (models.ReadingSet, error) {
	var env feedEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: decoding feed: %v", models.ErrParse, err)
	}
	if env.Feeds == nil {
		return nil, fmt.Errorf("%w: response has no feeds list", models.ErrParse)
	}

	out := make(models.ReadingSet, 0, len(*env.Feeds))
	dropped := 0
	for _, rec := range *env.Feeds {
		r, ok := rec.toReading()
		if !ok {
			dropped++
			continue
		}
		out = append(out, r)
	}
	if dropped > 0 {
		log.Printf("Dropped %d of %d feed records with missing or invalid values", dropped, len(*env.Feeds))
	}

	out.SortByTime()
	return out, nil
}

func (f feedRecord) toReading() (models.Reading, bool) {
	ts, ok := rawString(f.CreatedAt)
	if !ok {
		return models.Reading{}, false
	}
	timestamp, err := models.ParseTimestamp(ts)
	if err != nil {
		return models.Reading{}, false
	}
	temperature, ok := rawFloat(f.Field1)
	if !ok {
		return models.Reading{}, false
	}
	humidity, ok := rawFloat(f.Field2)
	if !ok {
		return models.Reading{}, false
	}

	r := models.Reading{
		Timestamp:   timestamp,
		Temperature: temperature,
		Humidity:    humidity,
	}
	return r, r.Valid()
}
