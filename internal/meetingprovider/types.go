package meetingprovider

// Типы встреч провайдера.
const (
	MeetingTypeScheduled      = 2 // Разовая встреча с назначенным временем
	MeetingTypeRecurringFixed = 8 // Повторяющаяся встреча с фиксированным временем
)

// Типы повторения.
const (
	RecurrenceDaily  = 1
	RecurrenceWeekly = 2
)

// Recurrence описывает правило повторения встречи.
type Recurrence struct {
	Type           int    `json:"type"` // 1 — ежедневно, 2 — еженедельно, 3 — ежемесячно
	RepeatInterval int    `json:"repeat_interval"`
	WeeklyDays     string `json:"weekly_days,omitempty"` // "1,2,3,4,5" для будних дней
	MonthlyDay     int    `json:"monthly_day,omitempty"`
	EndTimes       int    `json:"end_times,omitempty"`
}

// Settings настройки встречи.
type Settings struct {
	HostVideo        bool   `json:"host_video"`
	ParticipantVideo bool   `json:"participant_video"`
	JoinBeforeHost   bool   `json:"join_before_host"`
	MuteUponEntry    bool   `json:"mute_upon_entry"`
	Watermark        bool   `json:"watermark"`
	UsePMI           bool   `json:"use_pmi"`
	ApprovalType     int    `json:"approval_type"`
	Audio            string `json:"audio,omitempty"`
	AutoRecording    string `json:"auto_recording,omitempty"`
	WaitingRoom      bool   `json:"waiting_room"`
}

// Meeting представляет встречу у провайдера.
type Meeting struct {
	ID         int64       `json:"id"`
	Topic      string      `json:"topic"`
	StartTime  string      `json:"start_time"`
	Duration   int         `json:"duration"`
	JoinURL    string      `json:"join_url"`
	Password   string      `json:"password,omitempty"`
	HostID     string      `json:"host_id"`
	Status     string      `json:"status"`
	Type       int         `json:"type"`
	Recurrence *Recurrence `json:"recurrence,omitempty"`
}

// CreateMeetingRequest запрос на создание или обновление встречи.
type CreateMeetingRequest struct {
	Topic      string      `json:"topic"`
	Type       int         `json:"type"`
	StartTime  string      `json:"start_time,omitempty"`
	Duration   int         `json:"duration,omitempty"`
	Timezone   string      `json:"timezone,omitempty"`
	Password   string      `json:"password,omitempty"`
	Recurrence *Recurrence `json:"recurrence,omitempty"`
	Settings   *Settings   `json:"settings,omitempty"`
}

// meetingList ответ провайдера на запрос списка встреч.
type meetingList struct {
	Meetings []Meeting `json:"meetings"`
}

// tokenResponse ответ на обмен учётных данных.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// accountInfo данные учётной записи, используются для проверки соединения.
type accountInfo struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}
