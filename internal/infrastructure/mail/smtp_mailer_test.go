package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romero-panificados/inventario-api/pkg/config"
	"github.com/romero-panificados/inventario-api/pkg/logger"
)

func TestNewMailer_SinHostUsaLogMailer(t *testing.T) {
	m := NewMailer(config.SMTPConfig{}, logger.Nop())

	require.IsType(t, &LogMailer{}, m)
	assert.NoError(t, m.Send(context.Background(), []string{"admin@romero.test"}, "asunto", "cuerpo"))
}

func TestNewMailer_ConHostUsaSMTP(t *testing.T) {
	m := NewMailer(config.SMTPConfig{Host: "smtp.romero.test", Port: 587, From: "alertas@romero.test"}, logger.Nop())

	assert.IsType(t, &SMTPMailer{}, m)
}

func TestSMTPMailer_SinDestinatariosNoEnvia(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{Host: "smtp.romero.test", Port: 587})

	assert.NoError(t, m.Send(context.Background(), nil, "asunto", "cuerpo"))
}
