package session

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dropDatabas3/acmedash/internal/authz"
	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// JWTSource resuelve la sesión desde un access token Bearer firmado por el
// servicio de auth externo (HS256, secreto compartido). Sólo verificación:
// este servicio nunca emite tokens.
type JWTSource struct {
	secret []byte
	issuer string
}

// NewJWTSource crea el source. issuer vacío desactiva la validación de iss.
func NewJWTSource(secret []byte, issuer string) *JWTSource {
	return &JWTSource{secret: secret, issuer: issuer}
}

func (s *JWTSource) Resolve(ctx context.Context, r *http.Request) (*authz.Session, error) {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah == "" {
		return nil, nil
	}
	// tolerante: "Bearer xxx" case-insensitive
	var raw string
	if i := strings.IndexByte(ah, ' '); i > 0 && strings.EqualFold(ah[:i], "Bearer") {
		raw = strings.TrimSpace(ah[i+1:])
	}
	if raw == "" {
		return nil, nil
	}

	opts := []jwtv5.ParserOption{
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithLeeway(30 * time.Second),
	}
	if s.issuer != "" {
		opts = append(opts, jwtv5.WithIssuer(s.issuer))
	}
	tk, err := jwtv5.Parse(raw, func(t *jwtv5.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil || !tk.Valid {
		// token inválido = sin sesión; no es un fallo de infraestructura
		return nil, nil
	}
	claims, ok := tk.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, nil
	}

	sess := &authz.Session{}
	if sub, _ := claims["sub"].(string); sub != "" {
		sess.UserID = sub
	}
	if email, _ := claims["email"].(string); email != "" {
		sess.Email = email
	}
	if role, _ := claims["role"].(string); role != "" {
		sess.Role = role
	}
	return sess, nil
}
