package ports

import "context"

// Mailer define el puerto de salida para el correo (SMTP o registro en log).
// El contexto debe llevar un timeout: el envío corre fuera de la petición HTTP.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}
