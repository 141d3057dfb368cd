package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stok-api/internal/application/dto"
	"github.com/jhoicas/stok-api/internal/domain"
)

// paramInt64 lee un parámetro de ruta entero positivo.
func paramInt64(c *fiber.Ctx, name string) (int64, error) {
	n, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || n <= 0 {
		return 0, domain.Invalid("%s inválido", name)
	}
	return n, nil
}

// queryInt64 lee un query param entero; ausente = 0.
func queryInt64(c *fiber.Ctx, name string) (int64, error) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, domain.Invalid("%s inválido", name)
	}
	return n, nil
}

// queryTime acepta RFC3339 o fecha YYYY-MM-DD. Con endOfDay una fecha sola cubre el día completo.
func queryTime(c *fiber.Ctx, name string, endOfDay bool) (*time.Time, error) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	d, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return nil, domain.Invalid("%s debe ser RFC3339 o YYYY-MM-DD", name)
	}
	if endOfDay {
		d = d.Add(24*time.Hour - time.Nanosecond)
	}
	return &d, nil
}

// page lee limit/offset con tope.
func page(c *fiber.Ctx, def, max int) (int, int) {
	p := dto.PageRequest{Limit: c.QueryInt("limit", def), Offset: c.QueryInt("offset", 0)}
	p.Clamp(def, max)
	return p.Limit, p.Offset
}
