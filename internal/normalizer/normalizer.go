package normalizer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/seeuferweg-catalog/internal/domain"
	"github.com/seeuferweg-catalog/internal/pkg/metrics"
	"go.uber.org/zap"
)

var (
	// ErrUnknownSource - источник не поддерживается
	ErrUnknownSource = errors.New("unknown feed source")
	// ErrUnexpectedShape - документ фида не является ожидаемой JSON-структурой
	ErrUnexpectedShape = errors.New("unexpected feed document shape")
	// ErrRecordNotObject - запись фида не является JSON-объектом
	ErrRecordNotObject = errors.New("feed record is not an object")
)

// Normalizer разбирает документы фидов и маршрутизирует записи по источнику
type Normalizer struct {
	region  domain.BoundingBox
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewNormalizer создаёт нормализатор для заданного региона
func NewNormalizer(region domain.BoundingBox, logger *zap.Logger, m *metrics.Metrics) *Normalizer {
	if region.IsZero() {
		region = domain.WalenseeRegion
	}
	return &Normalizer{
		region:  region,
		logger:  logger,
		metrics: m,
	}
}

// Normalize преобразует документ фида source в список POI в порядке источника.
// Некорректные записи пропускаются, ошибка возвращается только для документа целиком
func (n *Normalizer) Normalize(source domain.Source, doc json.RawMessage) ([]domain.POI, error) {
	switch source {
	case domain.SourceGlarnerland:
		return n.normalizeGlarnerland(doc)
	case domain.SourceHeidiland:
		return n.normalizeHeidiland(doc)
	case domain.SourceRapperswil:
		return n.normalizeRapperswil(doc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, source)
	}
}

func (n *Normalizer) normalizeGlarnerland(doc json.RawMessage) ([]domain.POI, error) {
	records, err := splitArray(doc)
	if err != nil {
		return nil, err
	}

	pois := make([]domain.POI, 0, len(records))
	excluded := 0
	for i, raw := range records {
		rec, err := decodeRecord[domain.GlarnerlandRecord](raw)
		if err != nil {
			n.skip(domain.SourceGlarnerland, i, err)
			continue
		}
		poi, ok := NormalizeGlarnerland(rec, n.region)
		if !ok {
			excluded++
			continue
		}
		pois = append(pois, poi)
	}

	n.logger.Debug("Glarnerland normalized",
		zap.Int("records", len(records)),
		zap.Int("pois", len(pois)),
		zap.Int("outside_region", excluded))
	return pois, nil
}

func (n *Normalizer) normalizeHeidiland(doc json.RawMessage) ([]domain.POI, error) {
	records, err := splitArray(doc)
	if err != nil {
		return nil, err
	}

	pois := make([]domain.POI, 0, len(records))
	for i, raw := range records {
		rec, err := decodeRecord[domain.HeidilandRecord](raw)
		if err != nil {
			n.skip(domain.SourceHeidiland, i, err)
			continue
		}
		pois = append(pois, NormalizeHeidiland(rec))
	}
	return pois, nil
}

func (n *Normalizer) normalizeRapperswil(doc json.RawMessage) ([]domain.POI, error) {
	doc = bytes.TrimSpace(doc)
	if isNull(doc) {
		return []domain.POI{}, nil
	}

	var nodes []domain.RapperswilNode
	if doc[0] == '{' {
		var root domain.RapperswilNode
		if err := json.Unmarshal(doc, &root); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
		}
		nodes = []domain.RapperswilNode{root}
	} else if err := json.Unmarshal(doc, &nodes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	return NormalizeRapperswil(nodes), nil
}

func (n *Normalizer) skip(source domain.Source, index int, err error) {
	n.logger.Warn("Skipping malformed record",
		zap.String("source", string(source)),
		zap.Int("index", index),
		zap.Error(err))
	n.metrics.RecordsSkipped.WithLabelValues(string(source)).Inc()
}

// decodeRecord читает одну запись. Отдельные поля неверного типа запись не ломают,
// пропускается только запись, которая не является объектом
func decodeRecord[T any](raw json.RawMessage) (T, error) {
	var rec T
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return rec, ErrRecordNotObject
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// splitArray разбивает JSON-массив на сырые записи. null даёт пустой список
func splitArray(doc json.RawMessage) ([]json.RawMessage, error) {
	doc = bytes.TrimSpace(doc)
	if isNull(doc) {
		return nil, nil
	}
	if doc[0] != '[' {
		return nil, fmt.Errorf("%w: expected array", ErrUnexpectedShape)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(doc, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	return records, nil
}

func isNull(doc []byte) bool {
	return len(doc) == 0 || bytes.Equal(doc, []byte("null"))
}
