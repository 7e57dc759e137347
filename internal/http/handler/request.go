package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// pathID returns the :id parameter, rejecting anything that is not a UUID.
func pathID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", errInvalidID
	}
	return id, nil
}

// decodeBody decodes the JSON request body with the app's decoder.
func decodeBody(c *fiber.Ctx, out any) error {
	if err := c.App().Config().JSONDecoder(c.Body(), out); err != nil {
		return errInvalidBody
	}
	return nil
}

func parsePage(c *fiber.Ctx) (limit, offset int, err error) {
	limit, offset = defaultLimit, 0
	if v := c.Query("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 || limit > maxLimit {
			return 0, 0, invalidQuery("limit must be an integer between 1 and 100")
		}
	}
	if v := c.Query("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil || offset < 0 {
			return 0, 0, invalidQuery("offset must be a non-negative integer")
		}
	}
	return limit, offset, nil
}

// queryFloat returns nil when the parameter is absent.
func queryFloat(c *fiber.Ctx, name string) (*float64, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return nil, invalidQuery(name + " must be a non-negative number")
	}
	return &f, nil
}
