package model

import (
	"fmt"
	"time"
)

type Person struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

func (p Person) String() string {
	return fmt.Sprintf("%v <%v>", p.Name, p.Email)
}

// FormattedDate mirrors the short form used in the history list.
func (p Person) FormattedDate() string {
	return p.Date.UTC().Format("2006-01-02 15:04")
}
