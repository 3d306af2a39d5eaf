// Package mapping applies a single-row mapper to a batch of wire rows.
package mapping

import (
	"encoding/json"
	"log/slog"
)

// RowErrorHandler receives every row a mapper rejected together with the raw row.
type RowErrorHandler[D any] func(err error, dto D)

// Rows maps every dto with mapOne.
//
// Without a handler the first failing row aborts the batch and its error is
// returned unchanged. With a handler, failing rows are reported to
// it and skipped; the remaining rows are returned in input order.
func Rows[D, V any](dtos []D, mapOne func(D) (V, error), onErr RowErrorHandler[D]) ([]V, error) {
	out := make([]V, 0, len(dtos))
	for _, dto := range dtos {
		v, err := mapOne(dto)
		if err != nil {
			if onErr == nil {
				return nil, err
			}
			onErr(err, dto)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// RawRows decodes every raw row with decode and maps it with mapOne. A row
// that fails to decode is treated like a row mapOne rejected; the handler
// receives the part of the DTO that did decode.
func RawRows[D, V any](raws []json.RawMessage, decode func(json.RawMessage) (D, error), mapOne func(D) (V, error), onErr RowErrorHandler[D]) ([]V, error) {
	out := make([]V, 0, len(raws))
	for _, raw := range raws {
		dto, err := decode(raw)
		var v V
		if err == nil {
			v, err = mapOne(dto)
		}
		if err != nil {
			if onErr == nil {
				return nil, err
			}
			onErr(err, dto)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// RawRowsSafe is RawRows in always-skip mode, logging like RowsSafe.
func RawRowsSafe[D, V any](logger *slog.Logger, entity string, raws []json.RawMessage, decode func(json.RawMessage) (D, error), mapOne func(D) (V, error), onErr RowErrorHandler[D]) []V {
	if onErr == nil {
		onErr = LogRow[D](logger, entity)
	}
	out, _ := RawRows(raws, decode, mapOne, onErr)
	return out
}

// RowsSafe always skips failing rows. When onErr is nil the rows are logged
// at warn level through logger (slog.Default when nil).
func RowsSafe[D, V any](logger *slog.Logger, entity string, dtos []D, mapOne func(D) (V, error), onErr RowErrorHandler[D]) []V {
	if onErr == nil {
		onErr = LogRow[D](logger, entity)
	}
	out, _ := Rows(dtos, mapOne, onErr)
	return out
}

// LogRow returns a handler that logs each rejected row and keeps going.
func LogRow[D any](logger *slog.Logger, entity string) RowErrorHandler[D] {
	if logger == nil {
		logger = slog.Default()
	}
	return func(err error, _ D) {
		logger.Warn("skipping invalid row",
			"entity", entity,
			"error", err,
		)
	}
}

// Chain calls every non-nil handler in order.
func Chain[D any](handlers ...RowErrorHandler[D]) RowErrorHandler[D] {
	var hs []RowErrorHandler[D]
	for _, h := range handlers {
		if h != nil {
			hs = append(hs, h)
		}
	}
	if len(hs) == 0 {
		return nil
	}
	return func(err error, dto D) {
		for _, h := range hs {
			h(err, dto)
		}
	}
}
