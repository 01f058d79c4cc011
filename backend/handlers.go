package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Tilak-Shenoy/Calendar-Agent/backend/config"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"golang.org/x/oauth2"
)

var (
	db                 *gorm.DB
	googleOAuthConf    *oauth2.Config
	microsoftOAuthConf *oauth2.Config

	calendarCache      map[string]Calendar
	conversationsCache map[string]ChatSession
	chatProvider       ChatProvider
)

// How far ahead a chat turn's event snapshot reaches.
const snapshotWindow = 30 * 24 * time.Hour

func InitDB(cfg config.Config) {
	var err error
	dbURI := fmt.Sprintf("host=%s user=%s dbname=%s password=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBName, cfg.DBPassword, cfg.DBPort,
	)
	db, err = gorm.Open("postgres", dbURI)
	if err != nil {
		panic("failed to connect to database")
	}
	db.AutoMigrate(&User{})
	calendarCache = make(map[string]Calendar)
	conversationsCache = make(map[string]ChatSession)
}

func getServiceFromToken(token string) Calendar {
	service, ok := calendarCache[token]
	if !ok {
		claims, err := ValidateToken(token)
		if err != nil {
			log.Println(err.Error())
			return nil
		}
		user := &User{}
		if err := db.Where("email = ?", claims.Email).First(user).Error; err != nil {
			log.Println(err.Error())
			return nil
		}
		switch user.Provider {
		case Microsoft:
			t := &oauth2.Token{}
			if err := json.Unmarshal(user.CalendarToken, t); err != nil {
				return nil
			}
			service = NewMicrosoftCalendar(t)
		case Google:
			gcal, err := NewGoogleCalendar(googleOAuthConf, *user)
			if err != nil {
				log.Println(err.Error())
				return nil
			}
			service = gcal
		default:
			return nil
		}
		calendarCache[token] = service
	}
	return service
}

func HandleAuthentication(c *gin.Context) {
	token, err := c.Cookie("token")
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, "/login")
		return
	}
	if _, err := ValidateToken(token); err != nil {
		log.Println(err.Error())
		c.Redirect(http.StatusTemporaryRedirect, "/login")
		return
	}
	c.HTML(http.StatusOK, "chat.html", nil)
}

func Register(c *gin.Context) {
	var json struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&json); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := HashPassword(json.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}

	user := User{Email: json.Email, Password: hashedPassword}
	if err := db.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		return
	}

	token, err := GenerateJWT(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func Login(c *gin.Context) {
	var json struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&json); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user User
	if err := db.Where("email = ?", json.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !CheckPasswordHash(json.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := GenerateJWT(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func FetchCalendarData(c *gin.Context) {
	token, _ := c.Cookie("token")
	service := getServiceFromToken(token)
	if service == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No calendar connected"})
		return
	}

	events, err := service.ListEvents(c.Request.Context(), time.Now(), time.Now().Add(7*24*time.Hour))
	if err != nil {
		log.Println(err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load calendar"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": events})
}

func CreateEvent(c *gin.Context) {
	token, _ := c.Cookie("token")
	service := getServiceFromToken(token)
	if service == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No calendar connected"})
		return
	}

	event := Event{}
	if err := c.ShouldBindBodyWithJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := service.InsertEvent(c.Request.Context(), &event)
	if err != nil {
		log.Println(err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create event"})
		return
	}
	c.JSON(http.StatusOK, created)
}

func UpdateEvent(c *gin.Context) {
	token, _ := c.Cookie("token")
	service := getServiceFromToken(token)
	if service == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No calendar connected"})
		return
	}

	event := Event{}
	if err := c.ShouldBindBodyWithJSON(&event); err != nil || event.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event with id required"})
		return
	}

	updated, err := service.UpdateEvent(c.Request.Context(), event.ID, &event)
	if err != nil {
		log.Println(err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update event"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func RemoveEvent(c *gin.Context) {
	token, _ := c.Cookie("token")
	service := getServiceFromToken(token)
	if service == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No calendar connected"})
		return
	}

	event := Event{}
	if err := c.ShouldBindBodyWithJSON(&event); err != nil || event.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event with id required"})
		return
	}

	if err := service.DeleteEvent(c.Request.Context(), event.ID); err != nil {
		log.Println(err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to remove event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": event.ID})
}

// AIChat runs one conversational turn: the message goes to the model, and if
// the model picks one of the assistant functions, the dispatcher handles it
// against a fresh event snapshot and its rendered text becomes the reply.
func AIChat(c *gin.Context) {
	token, _ := c.Cookie("token")
	service := getServiceFromToken(token)
	if service == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No calendar connected"})
		return
	}

	ctx := c.Request.Context()
	session, ok := conversationsCache[token]
	if !ok {
		events, err := service.ListEvents(ctx, time.Now(), time.Now().Add(snapshotWindow))
		if err != nil {
			log.Println(err.Error())
		}
		session, err = chatProvider.NewSession(ctx, calendarSummary(events))
		if err != nil {
			log.Println(err.Error())
			c.JSON(http.StatusBadGateway, gin.H{"error": "Assistant unavailable"})
			return
		}
		conversationsCache[token] = session
	}

	var message struct {
		Content string `json:"message"`
	}
	if err := c.ShouldBindBodyWithJSON(&message); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, call, err := session.Send(ctx, message.Content)
	if err != nil {
		log.Println(err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": "Assistant unavailable"})
		return
	}

	if call != nil {
		events, err := service.ListEvents(ctx, time.Now(), time.Now().Add(snapshotWindow))
		if err != nil {
			log.Println(err.Error())
		}
		assistant := NewAssistant(service)
		reply = assistant.Handle(ctx, call.Name, call.Args, events)
		session.RecordFunctionResult(call, reply)
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
