package main

import (
	"encoding/json"

	"github.com/jinzhu/gorm"
)

const (
	Microsoft string = "MICROSOFT"
	Google    string = "GOOGLE"

	ProviderGemini string = "gemini"
	ProviderOpenAI string = "openai"
)

type User struct {
	gorm.Model
	Email         string `gorm:"unique;not null"`
	Password      string
	Provider      string
	ProviderID    string
	CalendarToken json.RawMessage `gorm:"type:jsonb"`
}
