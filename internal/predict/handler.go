package predict

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-sod/medknn/internal/cache"
	"github.com/go-sod/medknn/internal/httputil"
	"github.com/go-sod/medknn/internal/logging"
	"github.com/go-sod/medknn/internal/predictor"
	"github.com/go-sod/medknn/internal/record"
)

const maxBodyBytes = 8 * 1024 * 1024

type request struct {
	Records [][]float64 `json:"records"`
}

type response struct {
	Labels []int `json:"labels"`
}

// NewHandler serves batch predictions. Labels found in c are not
// recomputed; fingerprint identifies the training set behind classifier.
func NewHandler(cfg *Config, classifier *predictor.Classifier, c cache.Cache, fingerprint string) (http.Handler, error) {
	if classifier == nil {
		return nil, fmt.Errorf("%w: classifier is not defined", predictor.ErrConfiguration)
	}
	if c == nil {
		c = cache.Nop{}
	}
	return &handler{
		cfg:         cfg,
		classifier:  classifier,
		cache:       c,
		fingerprint: fingerprint,
	}, nil
}

type handler struct {
	cfg         *Config
	classifier  *predictor.Classifier
	cache       cache.Cache
	fingerprint string
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	logger := logging.FromContext(ctx)

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		logger.Debug(fmt.Sprintf(`{"error": "method %v is not allowed"}`, r.Method))
		_, _ = fmt.Fprintf(w, `{"error": "method %v is not allowed"}`, r.Method)
		return
	}

	if t := r.Header.Get("content-type"); len(t) < 16 || t[:16] != "application/json" {
		w.WriteHeader(http.StatusUnsupportedMediaType)
		logger.Debug(fmt.Sprintf(`{"error": "%v"}`, "content-type is not application/json"))
		_, _ = fmt.Fprintf(w, `{"error": "%v"}`, "content-type is not application/json")
		return
	}

	defer r.Body.Close()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&req); err != nil {
		httputil.DecodeErr(ctx, w, err)
		return
	}

	if len(req.Records) > h.cfg.MaxRecords {
		httputil.RespBadRequest(ctx, w, `{"error": "too many records, max allowed len is %d"}`, h.cfg.MaxRecords)
		return
	}

	queries := make([]record.FeatureVector, len(req.Records))
	for i, values := range req.Records {
		vec, err := record.FromSlice(values)
		if err != nil {
			httputil.RespBadRequest(ctx, w, `{"error": "record %d: %v"}`, i, err)
			return
		}
		queries[i] = vec
	}

	labels, err := h.classify(ctx, queries)
	if err != nil {
		httputil.RespInternalError(ctx, w, `{"error": "predict processing error, %v"}`, err)
		return
	}

	httputil.RespJSON(ctx, w, http.StatusOK, response{Labels: labels})
}

// classify answers from the cache where it can and classifies the rest.
// Cache failures only cost recomputation.
func (h *handler) classify(ctx context.Context, queries []record.FeatureVector) ([]int, error) {
	logger := logging.FromContext(ctx)

	keys := make([]string, len(queries))
	for i, q := range queries {
		keys[i] = h.key(q)
	}
	labels, hits, err := h.cache.GetMany(ctx, keys)
	if err != nil {
		logger.Warnf("predict: cache lookup failed: %v", err)
		labels, hits = make([]int, len(queries)), make([]bool, len(queries))
	}

	var (
		missIdx  []int
		missVecs []predictor.Vector
		missKeys []string
	)
	for i, hit := range hits {
		if !hit {
			missIdx = append(missIdx, i)
			missVecs = append(missVecs, queries[i])
			missKeys = append(missKeys, keys[i])
		}
	}
	if len(missIdx) == 0 {
		return labels, nil
	}

	computed, err := h.classifier.ClassifyAll(ctx, missVecs)
	if err != nil {
		return nil, err
	}
	for j, i := range missIdx {
		labels[i] = computed[j]
	}
	if err := h.cache.SetMany(ctx, missKeys, computed); err != nil {
		logger.Warnf("predict: cache store failed: %v", err)
	}
	logger.Debugf("predict: %d records, %d from cache", len(queries), len(queries)-len(missIdx))
	return labels, nil
}

func (h *handler) key(vec record.FeatureVector) string {
	return cache.Key(h.fingerprint, h.classifier.K(), string(h.classifier.TieBreak()), vec.Key())
}
