package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Tilak-Shenoy/Calendar-Agent/backend/config"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/coreos/go-oidc"
	"github.com/gin-gonic/gin"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	"github.com/microsoftgraph/msgraph-sdk-go/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

const graphTimeLayout = "2006-01-02T15:04:05.0000000"

type MicrosoftCalendar struct {
	client *msgraphsdk.GraphServiceClient
}

type TokenCredential struct {
	token *oauth2.Token
}

func (token *TokenCredential) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	if token.token.Valid() {
		return azcore.AccessToken{
			Token:     token.token.AccessToken,
			ExpiresOn: time.Now().Add(time.Duration(token.token.ExpiresIn)),
		}, nil
	}
	return azcore.AccessToken{}, fmt.Errorf("token not valid")
}

func NewMicrosoftCalendar(token *oauth2.Token) *MicrosoftCalendar {
	cred := TokenCredential{token}
	client, err := msgraphsdk.NewGraphServiceClientWithCredentials(&cred, []string{
		"User.Read",
		"Calendars.ReadWrite",
	})
	if err != nil {
		log.Println(err.Error())
		return nil
	}
	return &MicrosoftCalendar{client: client}
}

func fromGraphEvent(item models.Eventable) *Event {
	event := &Event{}
	if id := item.GetId(); id != nil {
		event.ID = *id
	}
	if subject := item.GetSubject(); subject != nil {
		event.Title = *subject
	}
	if loc := item.GetLocation(); loc != nil && loc.GetDisplayName() != nil {
		event.Location = *loc.GetDisplayName()
	}
	if body := item.GetBodyPreview(); body != nil {
		event.Description = *body
	}
	allDay := item.GetIsAllDay() != nil && *item.GetIsAllDay()
	if start := item.GetStart(); start != nil && start.GetDateTime() != nil {
		if t, err := time.Parse(graphTimeLayout, *start.GetDateTime()); err == nil {
			if allDay {
				event.Start = &EventDateTime{Date: t.Format("2006-01-02")}
			} else {
				event.Start = newEventDateTime(t.Local())
			}
		}
	}
	if end := item.GetEnd(); end != nil && end.GetDateTime() != nil {
		if t, err := time.Parse(graphTimeLayout, *end.GetDateTime()); err == nil {
			if allDay {
				event.End = &EventDateTime{Date: t.Format("2006-01-02")}
			} else {
				event.End = newEventDateTime(t.Local())
			}
		}
	}
	for _, a := range item.GetAttendees() {
		if addr := a.GetEmailAddress(); addr != nil && addr.GetAddress() != nil {
			attendee := Attendee{Email: *addr.GetAddress()}
			if addr.GetName() != nil {
				attendee.DisplayName = *addr.GetName()
			}
			event.Attendees = append(event.Attendees, attendee)
		}
	}
	return event
}

func toGraphEvent(e *Event) models.Eventable {
	mEvent := models.NewEvent()
	mEvent.SetSubject(&e.Title)
	if e.Description != "" {
		body := models.NewItemBody()
		contentType := models.TEXT_BODYTYPE
		body.SetContentType(&contentType)
		body.SetContent(&e.Description)
		mEvent.SetBody(body)
	}
	if e.Location != "" {
		loc := models.NewLocation()
		loc.SetDisplayName(&e.Location)
		mEvent.SetLocation(loc)
	}

	setSide := func(edt *EventDateTime, assign func(models.DateTimeTimeZoneable)) {
		if edt == nil {
			return
		}
		side := models.NewDateTimeTimeZone()
		if edt.DateTime != "" {
			if t, ok := parseInstant(edt.DateTime); ok {
				zone, _ := t.Zone()
				formatted := t.Format(graphTimeLayout)
				side.SetDateTime(&formatted)
				side.SetTimeZone(&zone)
			}
		} else if edt.Date != "" {
			formatted := edt.Date + "T00:00:00.0000000"
			zone := "UTC"
			side.SetDateTime(&formatted)
			side.SetTimeZone(&zone)
		}
		assign(side)
	}
	setSide(e.Start, mEvent.SetStart)
	setSide(e.End, mEvent.SetEnd)

	var attendees []models.Attendeeable
	for _, a := range e.Attendees {
		attendee := models.NewAttendee()
		addr := models.NewEmailAddress()
		email := a.Email
		addr.SetAddress(&email)
		if a.DisplayName != "" {
			name := a.DisplayName
			addr.SetName(&name)
		}
		attendee.SetEmailAddress(addr)
		attendees = append(attendees, attendee)
	}
	if len(attendees) > 0 {
		mEvent.SetAttendees(attendees)
	}
	return mEvent
}

func (c *MicrosoftCalendar) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]*Event, error) {
	events, err := c.client.Me().Calendar().Events().Get(ctx, nil)
	if err != nil {
		return nil, err
	}

	var arr []*Event
	for _, item := range events.GetValue() {
		event := fromGraphEvent(item)
		start, ok := event.StartTime()
		if ok && (start.Before(timeMin) || start.After(timeMax)) {
			continue
		}
		arr = append(arr, event)
	}
	return arr, nil
}

func (c *MicrosoftCalendar) GetEvent(ctx context.Context, id string) (*Event, error) {
	item, err := c.client.Me().Events().ByEventId(id).Get(ctx, nil)
	if err != nil {
		return nil, err
	}
	return fromGraphEvent(item), nil
}

func (c *MicrosoftCalendar) InsertEvent(ctx context.Context, payload *Event) (*Event, error) {
	item, err := c.client.Me().Calendar().Events().Post(ctx, toGraphEvent(payload), nil)
	if err != nil {
		return nil, err
	}
	return fromGraphEvent(item), nil
}

func (c *MicrosoftCalendar) UpdateEvent(ctx context.Context, id string, payload *Event) (*Event, error) {
	item, err := c.client.Me().Events().ByEventId(id).Patch(ctx, toGraphEvent(payload), nil)
	if err != nil {
		return nil, err
	}
	return fromGraphEvent(item), nil
}

func (c *MicrosoftCalendar) DeleteEvent(ctx context.Context, id string) error {
	return c.client.Me().Events().ByEventId(id).Delete(ctx, nil)
}

func InitMicrosoft(cfg config.Config) {
	microsoftOAuthConf = &oauth2.Config{
		ClientID:     cfg.MicrosoftClientID,
		ClientSecret: cfg.MicrosoftClientSecret,
		Scopes: []string{
			oidc.ScopeOpenID,
			oidc.ScopeOfflineAccess,
			"User.Read",
			"profile",
			"email",
			"Calendars.ReadWrite",
		},
		Endpoint: microsoft.AzureADEndpoint("common"),
	}
}

func MicrosoftLogin(c *gin.Context) {
	state := generateStateToken()
	c.SetCookie("oauthstate", state, 600, "/", "", false, true)
	url := microsoftOAuthConf.AuthCodeURL(state, oauth2.AccessTypeOffline)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func MicrosoftCallback(c *gin.Context) {
	if state, err := c.Cookie("oauthstate"); err != nil || state != c.Query("state") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid state"})
		return
	}

	code := c.Query("code")
	token, err := microsoftOAuthConf.Exchange(context.Background(), code)
	if err != nil {
		log.Println("exchange: ", err.Error())
		return
	}

	client, err := msgraphsdk.NewGraphServiceClientWithCredentials(&TokenCredential{token: token}, []string{
		"email",
	})
	if err != nil {
		log.Println("graph client: ", err.Error())
		return
	}

	userResp, err := client.Me().Get(context.Background(), nil)
	if err != nil {
		log.Println(err.Error())
		return
	}

	tokenJSON, _ := json.Marshal(token)

	user := &User{}
	if err := db.Where("provider_id = ?", *userResp.GetId()).First(user).Error; err != nil {
		user = &User{
			Email:         *userResp.GetMail(),
			ProviderID:    *userResp.GetId(),
			Provider:      Microsoft,
			CalendarToken: tokenJSON,
		}
		if err := db.Create(user).Error; err != nil {
			log.Println(err.Error())
			return
		}
	} else {
		user.CalendarToken = tokenJSON
		if err := db.Save(user).Error; err != nil {
			log.Println(err.Error())
		}
	}

	jwtToken, err := GenerateJWT(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		log.Println(err.Error())
		return
	}

	c.SetCookie("token", jwtToken, int(time.Now().Add(time.Hour*24*7).Unix()), "/", "", true, false)
	c.Redirect(http.StatusTemporaryRedirect, "http://localhost:8080/chat")
}
