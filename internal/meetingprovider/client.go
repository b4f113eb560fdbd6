// Package meetingprovider реализует клиент провайдера видеовстреч Zoom.
//
// Клиент держит кешированный bearer-токен: перед каждой операцией токен
// проверяется и при отсутствии либо истечении (с запасом в минуту)
// обновляется одним обменом server-to-server учётных данных. Вызывающие
// токен не видят и не управляют им.
package meetingprovider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kruenglish/course-platform/internal/lib/errs"
)

// expiryMargin токен обновляется за минуту до фактического истечения.
const expiryMargin = time.Minute

const defaultTimezone = "Asia/Bangkok"

// Client клиент Zoom API с кешем учётных данных.
type Client struct {
	accountID    string
	clientID     string
	clientSecret string
	apiURL       string
	authURL      string
	httpClient   *http.Client
	now          func() time.Time

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient создаёт новый клиент Zoom.
func NewClient(accountID, clientID, clientSecret string) *Client {
	return &Client{
		accountID:    accountID,
		clientID:     clientID,
		clientSecret: clientSecret,
		apiURL:       "https://api.zoom.us/v2",
		authURL:      "https://zoom.us/oauth/token",
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		now:          time.Now,
	}
}

// getAccessToken возвращает действующий токен, при необходимости выполняя
// обмен учётных данных. Мьютекс гарантирует один обмен на истечение,
// а не по одному на каждый конкурентный вызов.
func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && c.now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "account_credentials")
	form.Set("account_id", c.accountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &errs.AuthError{Message: err.Error()}
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &errs.AuthError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &errs.AuthError{Message: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &errs.AuthError{Message: fmt.Sprintf("status %d: %s", resp.StatusCode, string(raw))}
	}

	var token tokenResponse
	if err := json.Unmarshal(raw, &token); err != nil {
		return "", &errs.AuthError{Message: err.Error()}
	}

	c.accessToken = token.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(token.ExpiresIn)*time.Second - expiryMargin)
	return c.accessToken, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
		reqBody = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &errs.MeetingProviderError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errs.MeetingProviderError{StatusCode: resp.StatusCode, Message: err.Error()}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &errs.MeetingProviderError{StatusCode: resp.StatusCode, Message: string(raw)}
	}

	if result != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, result); err != nil {
			return &errs.MeetingProviderError{StatusCode: resp.StatusCode, Message: err.Error()}
		}
	}
	return nil
}

// CreateMeeting создаёт встречу.
func (c *Client) CreateMeeting(ctx context.Context, req CreateMeetingRequest) (*Meeting, error) {
	const op = "meetingprovider.CreateMeeting"

	if req.Duration == 0 {
		req.Duration = 60
	}
	if req.Timezone == "" {
		req.Timezone = defaultTimezone
	}
	if req.Settings == nil {
		req.Settings = defaultSettings()
	}

	var meeting Meeting
	if err := c.doRequest(ctx, http.MethodPost, "/users/me/meetings", req, &meeting); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &meeting, nil
}

// GetMeeting возвращает встречу по ID.
func (c *Client) GetMeeting(ctx context.Context, meetingID string) (*Meeting, error) {
	const op = "meetingprovider.GetMeeting"

	var meeting Meeting
	if err := c.doRequest(ctx, http.MethodGet, "/meetings/"+url.PathEscape(meetingID), nil, &meeting); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &meeting, nil
}

// UpdateMeeting изменяет параметры встречи.
func (c *Client) UpdateMeeting(ctx context.Context, meetingID string, patch CreateMeetingRequest) error {
	const op = "meetingprovider.UpdateMeeting"

	if err := c.doRequest(ctx, http.MethodPatch, "/meetings/"+url.PathEscape(meetingID), patch, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteMeeting удаляет встречу.
func (c *Client) DeleteMeeting(ctx context.Context, meetingID string) error {
	const op = "meetingprovider.DeleteMeeting"

	if err := c.doRequest(ctx, http.MethodDelete, "/meetings/"+url.PathEscape(meetingID), nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListMeetings возвращает текущие встречи аккаунта.
func (c *Client) ListMeetings(ctx context.Context) ([]Meeting, error) {
	const op = "meetingprovider.ListMeetings"

	var list meetingList
	if err := c.doRequest(ctx, http.MethodGet, "/users/me/meetings?type=live&page_size=300", nil, &list); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list.Meetings, nil
}

// TestConnection проверяет учётные данные запросом информации об аккаунте.
func (c *Client) TestConnection(ctx context.Context) (string, error) {
	const op = "meetingprovider.TestConnection"

	var info accountInfo
	if err := c.doRequest(ctx, http.MethodGet, "/users/me", nil, &info); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	switch {
	case info.Email != "":
		return info.Email, nil
	case info.FirstName != "":
		return info.FirstName, nil
	}
	return "unknown account", nil
}

// CreateClassMeeting создаёт встречу для занятий курса. Если правило
// повторения не задано явно, оно угадывается из текстового описания
// расписания; нераспознанный текст даёт разовую встречу, а не ошибку.
func (c *Client) CreateClassMeeting(ctx context.Context, courseName, scheduleText string, durationMinutes int, recurrence *Recurrence) (*Meeting, error) {
	if recurrence == nil {
		recurrence = InferRecurrence(scheduleText)
	}

	meetingType := MeetingTypeScheduled
	if recurrence != nil {
		meetingType = MeetingTypeRecurringFixed
	}

	req := CreateMeetingRequest{
		Topic:      courseName + " - Kru English Class",
		Type:       meetingType,
		Duration:   durationMinutes,
		Timezone:   defaultTimezone,
		Password:   meetingPassword(),
		Recurrence: recurrence,
		Settings:   defaultSettings(),
	}
	return c.CreateMeeting(ctx, req)
}

// InferRecurrence эвристически выводит правило повторения из текстового
// описания расписания. Возвращает nil, если шаблон не распознан.
func InferRecurrence(scheduleText string) *Recurrence {
	text := strings.ToLower(scheduleText)

	switch {
	case strings.Contains(text, "daily") || strings.Contains(text, "every day") || strings.Contains(text, "ทุกวัน"):
		return &Recurrence{
			Type:           RecurrenceDaily,
			RepeatInterval: 1,
			EndTimes:       30,
		}
	case strings.Contains(text, "mon-fri") || strings.Contains(text, "weekday") || strings.Contains(text, "จันทร์-ศุกร์"):
		return &Recurrence{
			Type:           RecurrenceWeekly,
			RepeatInterval: 1,
			WeeklyDays:     "1,2,3,4,5",
			EndTimes:       12,
		}
	}
	return nil
}

func defaultSettings() *Settings {
	return &Settings{
		HostVideo:        true,
		ParticipantVideo: true,
		JoinBeforeHost:   true,
		MuteUponEntry:    true,
		Watermark:        false,
		UsePMI:           false,
		ApprovalType:     0, // Автоматическое одобрение участников
		Audio:            "both",
		AutoRecording:    "none",
		WaitingRoom:      false,
	}
}

func meetingPassword() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}
