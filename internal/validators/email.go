package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// lookupTimeout limita a consulta DNS feita durante o cadastro.
const lookupTimeout = 3 * time.Second

// resolver é trocado nos testes.
var resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
} = net.DefaultResolver

// IsEmailDomainValid confere a sintaxe do e-mail e se o domínio responde
// com MX (ou, na falta dele, com algum endereço).
func IsEmailDomainValid(email string) bool {
	email = strings.TrimSpace(email)
	if validate.Var(email, "required,email") != nil {
		return false
	}

	domain := strings.ToLower(email[strings.LastIndex(email, "@")+1:])

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	if mx, err := resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	hosts, err := resolver.LookupHost(ctx, domain)
	return err == nil && len(hosts) > 0
}
