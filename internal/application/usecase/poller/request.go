package poller

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"taskwatch/internal/domain/entity"
)

type msgRef struct {
	MsgID    string `json:"msg_id"`
	TaskID   string `json:"task_id"`
	Checksum string `json:"checksum"`
}

// EncodeMsgs returns the JSON carried in the msgs parameter. Keys are sorted by encoding/json.
func EncodeMsgs(scan entity.ScanResult) (string, error) {
	msgs := make(map[string]msgRef, len(scan))
	for id, ref := range scan {
		msgs[id] = msgRef{
			MsgID:    ref.ElementID,
			TaskID:   ref.TaskID,
			Checksum: ref.Checksum,
		}
	}
	data, err := json.Marshal(msgs)
	if err != nil {
		return "", fmt.Errorf("encode msgs: %w", err)
	}
	return string(data), nil
}

// BuildURL encodes one scan into the poll URL. It performs no I/O.
func BuildURL(endpoint string, protocol Protocol, scan entity.ScanResult) (string, error) {
	var query string
	switch protocol {
	case ProtocolMsgs:
		msgs, err := EncodeMsgs(scan)
		if err != nil {
			return "", err
		}
		query = "msgs=" + url.QueryEscape(msgs)
	case ProtocolFlat:
		values := url.Values{}
		for id, ref := range scan {
			values.Set(id, ref.Checksum)
		}
		query = values.Encode()
	default:
		return "", fmt.Errorf("%w: unknown protocol %q", ErrInvalidConfig, protocol)
	}

	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
		if strings.HasSuffix(endpoint, "?") || strings.HasSuffix(endpoint, "&") {
			sep = ""
		}
	}
	return endpoint + sep + query, nil
}
