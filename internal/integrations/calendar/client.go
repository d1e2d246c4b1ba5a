package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент free/busy API внешнего календаря
type Client struct {
	baseURL    string
	calendarID string
	token      string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента календаря
func NewClient(baseURL, calendarID, token string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		calendarID: calendarID,
		token:      token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CalendarID идентификатор календаря, с которым работает клиент
func (c *Client) CalendarID() string {
	return c.calendarID
}

// FreeBusy получает занятые интервалы календаря в окне [from, to)
// Интервалы возвращаются в UTC, отсортированными по началу; пустые и перевернутые отбрасываются
func (c *Client) FreeBusy(ctx context.Context, from, to time.Time) ([]BusyInterval, error) {
	body, err := json.Marshal(freeBusyRequest{
		TimeMin: from.UTC().Format(time.RFC3339),
		TimeMax: to.UTC().Format(time.RFC3339),
		Items:   []freeBusyItem{{ID: c.calendarID}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/freeBusy", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var parsed freeBusyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	cal, ok := parsed.Calendars[c.calendarID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCalendarNotFound, c.calendarID)
	}
	if len(cal.Errors) > 0 {
		return nil, fmt.Errorf("%w: calendar %s reported %s", ErrInvalidResponse, c.calendarID, cal.Errors[0].Reason)
	}

	intervals := make([]BusyInterval, 0, len(cal.Busy))
	for _, p := range cal.Busy {
		if !p.End.After(p.Start) {
			c.log.Warn("Calendar %s: skipping empty busy period %s - %s", c.calendarID, p.Start, p.End)
			continue
		}
		intervals = append(intervals, BusyInterval{Start: p.Start.UTC(), End: p.End.UTC()})
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})

	c.log.Info("Calendar %s: fetched %d busy intervals", c.calendarID, len(intervals))
	return intervals, nil
}
