package predict

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-sod/medknn/internal/geom"
	"github.com/go-sod/medknn/internal/predictor"
	"github.com/go-sod/medknn/internal/predictor/knn/brute"
	"github.com/go-sod/medknn/internal/record"
)

var (
	first  = record.New(57, 1, 1, 130, 131, 0, 1, 115, 1, 1.2, 2, 1, 3)
	second = record.New(63, 1, 4, 145, 233, 1, 2, 150, 0, 2.3, 3, 0, 6)
)

const (
	firstJSON  = `[57,1,1,130,131,0,1,115,1,1.2,2,1,3]`
	secondJSON = `[63,1,4,145,233,1,2,150,0,2.3,3,0,6]`
)

func newClassifier(t *testing.T) *predictor.Classifier {
	t.Helper()
	alg := brute.NewBruteAlg(geom.EuclideanDistance)
	alg.Build(record.Sample{Features: first, Class: 0}, record.Sample{Features: second, Class: 1})
	c, err := predictor.New(alg, predictor.WithK(1), predictor.WithTieBreak(predictor.TieBreakLowest))
	if err != nil {
		t.Fatalf("unable create classifier: %v", err)
	}
	return c
}

type mapCache struct {
	mtx    sync.Mutex
	labels map[string]int
	err    error
	sets   int
}

func (m *mapCache) GetMany(_ context.Context, keys []string) ([]int, []bool, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.err != nil {
		return nil, nil, m.err
	}
	labels := make([]int, len(keys))
	hits := make([]bool, len(keys))
	for i, key := range keys {
		labels[i], hits[i] = m.labels[key]
	}
	return labels, hits, nil
}

func (m *mapCache) SetMany(_ context.Context, keys []string, labels []int) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sets += len(keys)
	for i, key := range keys {
		m.labels[key] = labels[i]
	}
	return nil
}

func (m *mapCache) Close() error {
	return nil
}

func TestHandler(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		method         string
		contentType    string
		body           string
		expectedCode   int
		expectedLabels []int
	}{
		{
			name:           "positive",
			method:         http.MethodPost,
			contentType:    "application/json",
			body:           `{"records": [` + secondJSON + `,` + firstJSON + `,` + secondJSON + `]}`,
			expectedCode:   http.StatusOK,
			expectedLabels: []int{1, 0, 1},
		},
		{
			name:           "positive_empty",
			method:         http.MethodPost,
			contentType:    "application/json; charset=utf-8",
			body:           `{"records": []}`,
			expectedCode:   http.StatusOK,
			expectedLabels: []int{},
		},
		{
			name:         "negative_method",
			method:       http.MethodGet,
			contentType:  "application/json",
			expectedCode: http.StatusMethodNotAllowed,
		},
		{
			name:         "negative_content_type",
			method:       http.MethodPost,
			contentType:  "text/plain",
			body:         `{"records": []}`,
			expectedCode: http.StatusUnsupportedMediaType,
		},
		{
			name:         "negative_twelve_values",
			method:       http.MethodPost,
			contentType:  "application/json",
			body:         `{"records": [[57,1,1,130,131,0,1,115,1,1.2,2,1]]}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "negative_fractional_integer",
			method:       http.MethodPost,
			contentType:  "application/json",
			body:         `{"records": [[57.5,1,1,130,131,0,1,115,1,1.2,2,1,3]]}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "negative_too_many",
			method:       http.MethodPost,
			contentType:  "application/json",
			body:         `{"records": [` + firstJSON + `,` + firstJSON + `,` + firstJSON + `]}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "negative_malformed",
			method:       http.MethodPost,
			contentType:  "application/json",
			body:         `{"records": [`,
			expectedCode: http.StatusBadRequest,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			maxRecords := 5
			if test.name == "negative_too_many" {
				maxRecords = 2
			}
			h, err := NewHandler(&Config{RequestTimeout: time.Second, MaxRecords: maxRecords}, newClassifier(t), nil, "fp")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			req := httptest.NewRequest(test.method, "/predict", strings.NewReader(test.body))
			req.Header.Set("Content-Type", test.contentType)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			if w.Code != test.expectedCode {
				t.Fatalf("code got: %d, expected: %d, body: %s", w.Code, test.expectedCode, w.Body.String())
			}
			if test.expectedLabels == nil {
				return
			}
			var resp response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unable decode response: %v", err)
			}
			if len(resp.Labels) != len(test.expectedLabels) {
				t.Fatalf("labels got: %v, expected: %v", resp.Labels, test.expectedLabels)
			}
			for i := range resp.Labels {
				if resp.Labels[i] != test.expectedLabels[i] {
					t.Errorf("labels got: %v, expected: %v", resp.Labels, test.expectedLabels)
					break
				}
			}
		})
	}
}

func TestHandler_Cache(t *testing.T) {
	t.Parallel()
	c := &mapCache{labels: map[string]int{}}
	classifier := newClassifier(t)
	h, err := NewHandler(&Config{RequestTimeout: time.Second, MaxRecords: 10}, classifier, c, "fp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	post := func(body string) []int {
		req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("code got: %d, body: %s", w.Code, w.Body.String())
		}
		var resp response
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unable decode response: %v", err)
		}
		return resp.Labels
	}

	post(`{"records": [` + firstJSON + `]}`)
	if c.sets != 1 {
		t.Fatalf("cache sets got: %d, expected: 1", c.sets)
	}

	// a cached label is served as is, even when it disagrees with the model
	c.labels[cacheKey(classifier, first)] = 9
	labels := post(`{"records": [` + firstJSON + `,` + secondJSON + `]}`)
	if labels[0] != 9 || labels[1] != 1 {
		t.Errorf("labels got: %v, expected: [9 1]", labels)
	}
	if c.sets != 2 {
		t.Errorf("only misses must be stored, sets got: %d, expected: 2", c.sets)
	}

	c.err = errors.New("connection refused")
	labels = post(`{"records": [` + firstJSON + `]}`)
	if labels[0] != 0 {
		t.Errorf("a failing cache must fall back to classification, got: %v", labels)
	}
}

func cacheKey(c *predictor.Classifier, vec record.FeatureVector) string {
	h := &handler{classifier: c, fingerprint: "fp"}
	return h.key(vec)
}
