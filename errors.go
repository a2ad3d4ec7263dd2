// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package pdd

import (
	"fmt"
	"log"
)

// Error returns the error status of the manager.
func (m *Manager) Error() string {
	if m.error == nil {
		return ""
	}
	return m.error.Error()
}

// Errored returns true if there was an error during a computation.
func (m *Manager) Errored() bool {
	return m.error != nil
}

// ClearError resets the error status of the manager.
func (m *Manager) ClearError() {
	m.error = nil
}

func (m *Manager) seterror(format string, a ...interface{}) *Pdd {
	if m.error != nil {
		format = format + "; " + m.Error()
		m.error = fmt.Errorf(format, a...)
		return nil
	}
	m.error = fmt.Errorf(format, a...)
	if _DEBUG {
		log.Println(m.error)
	}
	return nil
}
