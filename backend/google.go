package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Tilak-Shenoy/Calendar-Agent/backend/config"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type GoogleCalendar struct {
	service *calendar.Service
}

func NewGoogleCalendar(conf *oauth2.Config, user User) (*GoogleCalendar, error) {
	var token oauth2.Token
	if err := json.Unmarshal(user.CalendarToken, &token); err != nil {
		return nil, fmt.Errorf("stored calendar token unreadable: %w", err)
	}

	client := conf.Client(context.Background(), &token)
	srv, err := calendar.NewService(context.Background(), option.WithHTTPClient(client))
	if err != nil {
		return nil, err
	}

	return &GoogleCalendar{service: srv}, nil
}

func toGoogleEvent(e *Event) *calendar.Event {
	gEvent := &calendar.Event{
		Summary:     e.Title,
		Description: e.Description,
		Location:    e.Location,
	}
	if e.Start != nil {
		gEvent.Start = &calendar.EventDateTime{
			DateTime: e.Start.DateTime,
			Date:     e.Start.Date,
			TimeZone: e.Start.TimeZone,
		}
	}
	if e.End != nil {
		gEvent.End = &calendar.EventDateTime{
			DateTime: e.End.DateTime,
			Date:     e.End.Date,
			TimeZone: e.End.TimeZone,
		}
	}
	for _, a := range e.Attendees {
		gEvent.Attendees = append(gEvent.Attendees, &calendar.EventAttendee{
			Email:       a.Email,
			DisplayName: a.DisplayName,
		})
	}
	if e.ReminderMinutes > 0 {
		gEvent.Reminders = &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: int64(e.ReminderMinutes)},
			},
			ForceSendFields: []string{"UseDefault"},
		}
	}
	return gEvent
}

func fromGoogleEvent(item *calendar.Event) *Event {
	event := &Event{
		ID:          item.Id,
		Title:       item.Summary,
		Description: item.Description,
		Location:    item.Location,
	}
	if item.Start != nil {
		event.Start = &EventDateTime{
			DateTime: item.Start.DateTime,
			Date:     item.Start.Date,
			TimeZone: item.Start.TimeZone,
		}
	}
	if item.End != nil {
		event.End = &EventDateTime{
			DateTime: item.End.DateTime,
			Date:     item.End.Date,
			TimeZone: item.End.TimeZone,
		}
	}
	for _, a := range item.Attendees {
		event.Attendees = append(event.Attendees, Attendee{
			Email:       a.Email,
			DisplayName: a.DisplayName,
		})
	}
	return event
}

func (c *GoogleCalendar) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*Event, error) {
	events, err := c.service.Events.
		List("primary").
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	eventArr := make([]*Event, len(events.Items))
	for i, item := range events.Items {
		eventArr[i] = fromGoogleEvent(item)
	}
	return eventArr, nil
}

func (c *GoogleCalendar) GetEvent(ctx context.Context, id string) (*Event, error) {
	item, err := c.service.Events.Get("primary", id).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return fromGoogleEvent(item), nil
}

func (c *GoogleCalendar) InsertEvent(ctx context.Context, payload *Event) (*Event, error) {
	item, err := c.service.Events.Insert("primary", toGoogleEvent(payload)).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return fromGoogleEvent(item), nil
}

func (c *GoogleCalendar) UpdateEvent(ctx context.Context, id string, payload *Event) (*Event, error) {
	item, err := c.service.Events.Update("primary", id, toGoogleEvent(payload)).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return fromGoogleEvent(item), nil
}

func (c *GoogleCalendar) DeleteEvent(ctx context.Context, id string) error {
	return c.service.Events.Delete("primary", id).Context(ctx).Do()
}

func InitGoogle(cfg config.Config) {
	googleOAuthConf = &oauth2.Config{
		RedirectURL:  "http://localhost:8080/auth/google/callback",
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			calendar.CalendarScope,
		},
		Endpoint: google.Endpoint,
	}
}

func GoogleLogin(c *gin.Context) {
	state := generateStateToken()
	c.SetCookie("oauthstate", state, 600, "/", "", false, true)
	url := googleOAuthConf.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func GoogleCallback(c *gin.Context) {
	if state, err := c.Cookie("oauthstate"); err != nil || state != c.Query("state") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid state"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code not provided"})
		return
	}

	token, err := googleOAuthConf.Exchange(context.Background(), code)
	if err != nil {
		log.Printf("Failed to Exchange %s \n", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to exchange token"})
		return
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		log.Printf("Failed to Fetch %s \n", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to get user info"})
		return
	}
	defer resp.Body.Close()

	var userInfo struct {
		Email string `json:"email"`
		ID    string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse user info"})
		return
	}

	tokenJSON, _ := json.Marshal(token)

	var user User
	if err := db.Where("provider_id = ?", userInfo.ID).First(&user).Error; err != nil {
		user = User{Email: userInfo.Email, ProviderID: userInfo.ID, Provider: Google, CalendarToken: tokenJSON}
		if err := db.Create(&user).Error; err != nil {
			log.Println(err.Error())
		}
	} else {
		user.CalendarToken = tokenJSON
		if err := db.Save(&user).Error; err != nil {
			log.Println(err.Error())
		}
	}

	jwtToken, err := GenerateJWT(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		log.Println(err.Error())
		return
	}

	if service, err := NewGoogleCalendar(googleOAuthConf, user); err == nil {
		calendarCache[jwtToken] = service
	}

	c.SetCookie("token", jwtToken, int(time.Now().Add(time.Hour*24*7).Unix()), "/", "", true, false)
	c.Redirect(http.StatusTemporaryRedirect, "http://localhost:8080/chat")
}
