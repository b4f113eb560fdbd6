package meetingprovider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kruenglish/course-platform/internal/lib/errs"
)

func newTestClient(api, auth *httptest.Server) *Client {
	client := NewClient("acc_1", "client_1", "secret_1")
	client.apiURL = api.URL
	client.authURL = auth.URL
	client.httpClient = api.Client()
	return client
}

func newAuthServer(tokenCalls *int32, expiresIn int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok_1",
			"expires_in":   expiresIn,
		})
	}))
}

func TestGetAccessToken(t *testing.T) {
	t.Run("токен обменивается один раз и переиспользуется", func(t *testing.T) {
		var tokenCalls int32
		auth := newAuthServer(&tokenCalls, 3600)
		defer auth.Close()

		api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok_1", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"meetings":[]}`))
		}))
		defer api.Close()

		client := newTestClient(api, auth)

		_, err := client.ListMeetings(context.Background())
		require.NoError(t, err)
		_, err = client.ListMeetings(context.Background())
		require.NoError(t, err)

		assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))
	})

	t.Run("токен обновляется с запасом до фактического истечения", func(t *testing.T) {
		var tokenCalls int32
		auth := newAuthServer(&tokenCalls, 90)
		defer auth.Close()

		api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"meetings":[]}`))
		}))
		defer api.Close()

		client := newTestClient(api, auth)

		current := time.Now()
		client.now = func() time.Time { return current }

		_, err := client.ListMeetings(context.Background())
		require.NoError(t, err)

		// expires_in 90s минус запас в минуту: через 40 секунд токен уже истек
		current = current.Add(40 * time.Second)
		_, err = client.ListMeetings(context.Background())
		require.NoError(t, err)

		assert.Equal(t, int32(2), atomic.LoadInt32(&tokenCalls))
	})

	t.Run("отказ в обмене учетных данных дает AuthError", func(t *testing.T) {
		auth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"reason":"Invalid client credentials"}`))
		}))
		defer auth.Close()

		api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer api.Close()

		client := newTestClient(api, auth)

		_, err := client.ListMeetings(context.Background())

		var authErr *errs.AuthError
		assert.ErrorAs(t, err, &authErr)
	})
}

func TestInferRecurrence(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		expected *Recurrence
	}{
		{
			name:     "ежедневное расписание на английском",
			schedule: "Daily 19:00-20:00",
			expected: &Recurrence{Type: RecurrenceDaily, RepeatInterval: 1, EndTimes: 30},
		},
		{
			name:     "ежедневное расписание на тайском",
			schedule: "ทุกวัน 19:00",
			expected: &Recurrence{Type: RecurrenceDaily, RepeatInterval: 1, EndTimes: 30},
		},
		{
			name:     "будние дни",
			schedule: "Mon-Fri 20:00-21:00",
			expected: &Recurrence{Type: RecurrenceWeekly, RepeatInterval: 1, WeeklyDays: "1,2,3,4,5", EndTimes: 12},
		},
		{
			name:     "будние дни на тайском",
			schedule: "จันทร์-ศุกร์ 18:00",
			expected: &Recurrence{Type: RecurrenceWeekly, RepeatInterval: 1, WeeklyDays: "1,2,3,4,5", EndTimes: 12},
		},
		{
			name:     "нераспознанный текст дает nil",
			schedule: "Saturday 10:00",
			expected: nil,
		},
		{
			name:     "пустая строка дает nil",
			schedule: "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferRecurrence(tt.schedule))
		})
	}
}

func TestCreateClassMeeting(t *testing.T) {
	t.Run("ежедневное расписание дает повторяющуюся встречу", func(t *testing.T) {
		var tokenCalls int32
		auth := newAuthServer(&tokenCalls, 3600)
		defer auth.Close()

		var got CreateMeetingRequest
		api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/users/me/meetings", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":123,"topic":"General English - Kru English Class","join_url":"https://zoom.example/j/123"}`))
		}))
		defer api.Close()

		client := newTestClient(api, auth)

		meeting, err := client.CreateClassMeeting(context.Background(), "General English", "Daily 19:00", 60, nil)

		require.NoError(t, err)
		assert.Equal(t, int64(123), meeting.ID)
		assert.Equal(t, "General English - Kru English Class", got.Topic)
		assert.Equal(t, MeetingTypeRecurringFixed, got.Type)
		require.NotNil(t, got.Recurrence)
		assert.Equal(t, RecurrenceDaily, got.Recurrence.Type)
		assert.Equal(t, "Asia/Bangkok", got.Timezone)
		assert.Len(t, got.Password, 6)
	})

	t.Run("нераспознанное расписание дает разовую встречу", func(t *testing.T) {
		var tokenCalls int32
		auth := newAuthServer(&tokenCalls, 3600)
		defer auth.Close()

		var got CreateMeetingRequest
		api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":124}`))
		}))
		defer api.Close()

		client := newTestClient(api, auth)

		_, err := client.CreateClassMeeting(context.Background(), "CEFR Platinum", "Saturday 10:00", 0, nil)

		require.NoError(t, err)
		assert.Equal(t, MeetingTypeScheduled, got.Type)
		assert.Nil(t, got.Recurrence)
	})

	t.Run("явное правило повторения имеет приоритет над текстом", func(t *testing.T) {
		var tokenCalls int32
		auth := newAuthServer(&tokenCalls, 3600)
		defer auth.Close()

		var got CreateMeetingRequest
		api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":125}`))
		}))
		defer api.Close()

		client := newTestClient(api, auth)

		explicit := &Recurrence{Type: RecurrenceWeekly, RepeatInterval: 2, WeeklyDays: "6", EndTimes: 8}
		_, err := client.CreateClassMeeting(context.Background(), "Combo", "Daily 19:00", 60, explicit)

		require.NoError(t, err)
		require.NotNil(t, got.Recurrence)
		assert.Equal(t, "6", got.Recurrence.WeeklyDays)
		assert.Equal(t, 2, got.Recurrence.RepeatInterval)
	})
}

func TestProviderErrors(t *testing.T) {
	t.Run("ошибка API оборачивается в MeetingProviderError", func(t *testing.T) {
		var tokenCalls int32
		auth := newAuthServer(&tokenCalls, 3600)
		defer auth.Close()

		api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":3001,"message":"Meeting does not exist"}`))
		}))
		defer api.Close()

		client := newTestClient(api, auth)

		_, err := client.GetMeeting(context.Background(), "99999")

		var providerErr *errs.MeetingProviderError
		require.ErrorAs(t, err, &providerErr)
		assert.Equal(t, http.StatusNotFound, providerErr.StatusCode)
	})
}
