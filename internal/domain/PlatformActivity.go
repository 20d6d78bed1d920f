package domain

import (
	"time"
)

// PlatformActivity resume a presença de uma plataforma conectada no banco:
// quantos registros existem e qual o intervalo coberto. Alimenta a tela de
// conexões do dashboard.
type PlatformActivity struct {
	Platform      string     `json:"platform"`
	RecordCount   int        `json:"record_count"`
	FirstRecordAt *time.Time `json:"first_record_at"`
	LastRecordAt  *time.Time `json:"last_record_at"`
}

// PlatformActivityResponse é a resposta do endpoint de plataformas.
type PlatformActivityResponse struct {
	Platforms []*PlatformActivity `json:"platforms"`
	Total     int                 `json:"total"`
}
