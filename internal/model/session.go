package model

import "time"

// AuthSession is the record persisted in the key-value store after a
// successful login.  Only its presence is consulted for authentication;
// the fields are carried for display.
type AuthSession struct {
	EmployeeID uint64    `json:"employeeId"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Timestamp  time.Time `json:"timestamp"`
}
