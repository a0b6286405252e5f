package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/nameres/internal/domain"
)

// Report status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

const (
	messageOK          = "Reporting results from primary core."
	messageCoreMissing = "Expected core not found."
)

// IndexKeys lists the index statistics passed through, in report order.
var IndexKeys = []string{"numDocs", "maxDoc", "deletedDocs", "version", "segmentCount", "lastModified", "size"}

var missingValue = json.RawMessage(`""`)

// Metadata describes the data and code versions served by this instance.
type Metadata struct {
	BabelVersion    string
	BabelVersionURL string
	BiolinkModelTag string
	BiolinkModelURL string
	NameResVersion  string
}

// Report is the status of the primary core. Core fields are only set when Status is StatusOK.
type Report struct {
	Status    string
	Message   string
	Metadata  Metadata
	StartTime json.RawMessage
	// Index holds every IndexKeys entry; unreported values are "".
	Index map[string]json.RawMessage
}

// Service reports the primary core status.
type Service struct {
	cores    CoreReader
	coreName string
	meta     Metadata
}

// New creates a status service.
func New(cores CoreReader, coreName string, meta Metadata) *Service {
	return &Service{cores: cores, coreName: coreName, meta: meta}
}

// Status returns the primary core report. A missing core is reported, not returned as an error.
func (s *Service) Status(ctx context.Context) (Report, error) {
	st, err := s.cores.Core(ctx, s.coreName)
	if errors.Is(err, domain.ErrCoreNotFound) {
		return Report{Status: StatusError, Message: messageCoreMissing}, nil
	}
	if err != nil {
		return Report{}, fmt.Errorf("core status: %w", err)
	}

	index := make(map[string]json.RawMessage, len(IndexKeys))
	for _, k := range IndexKeys {
		if v, ok := st.IndexValue(k); ok {
			index[k] = v
		} else {
			index[k] = missingValue
		}
	}

	startTime := st.StartTime()
	if len(startTime) == 0 {
		startTime = missingValue
	}

	return Report{
		Status:    StatusOK,
		Message:   messageOK,
		Metadata:  s.meta,
		StartTime: startTime,
		Index:     index,
	}, nil
}
