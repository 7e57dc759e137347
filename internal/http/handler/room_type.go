package handler

import (
	"github.com/gofiber/fiber/v2"

	"hotelapi/internal/service"
)

// ListRoomTypes returns a page of room types, newest first.
//
// @Summary   List room types
// @Tags      room-types
// @Produce   json
// @Param     limit  query int false "page size (1..100)" default(10)
// @Param     offset query int false "items to skip" default(0)
// @Success   200 {object} service.ListResult[model.RoomType]
// @Failure   400 {object} errorPayload
// @Security  ApiKeyAuth
// @Router    /api/v1/room-types [get]
func ListRoomTypes(svc service.RoomTypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := parsePage(c)
		if err != nil {
			return err
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// GetRoomType returns one room type by id.
//
// @Summary   Get a room type
// @Tags      room-types
// @Produce   json
// @Param     id path string true "room type id"
// @Success   200 {object} model.RoomType
// @Failure   400,404 {object} errorPayload
// @Security  ApiKeyAuth
// @Router    /api/v1/room-types/{id} [get]
func GetRoomType(svc service.RoomTypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		rt, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(rt)
	}
}

// CreateRoomType stores a new room type.
//
// @Summary   Create a room type
// @Tags      room-types
// @Accept    json
// @Produce   json
// @Param     body body service.RoomTypeInput true "room type"
// @Success   201 {object} model.RoomType
// @Failure   400,409 {object} errorPayload
// @Security  ApiKeyAuth
// @Router    /api/v1/room-types [post]
func CreateRoomType(svc service.RoomTypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RoomTypeInput
		if err := decodeBody(c, &in); err != nil {
			return err
		}
		rt, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(rt)
	}
}

// ReplaceRoomType overwrites name and description.
//
// @Summary   Replace a room type
// @Tags      room-types
// @Accept    json
// @Produce   json
// @Param     id   path string                true "room type id"
// @Param     body body service.RoomTypeInput true "room type"
// @Success   200 {object} model.RoomType
// @Failure   400,404,409 {object} errorPayload
// @Security  ApiKeyAuth
// @Router    /api/v1/room-types/{id} [put]
func ReplaceRoomType(svc service.RoomTypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		var in service.RoomTypeInput
		if err := decodeBody(c, &in); err != nil {
			return err
		}
		rt, err := svc.Replace(c.UserContext(), id, in)
		if err != nil {
			return err
		}
		return c.JSON(rt)
	}
}

// UpdateRoomType applies a partial update; omitted fields keep their value.
//
// @Summary   Update a room type
// @Tags      room-types
// @Accept    json
// @Produce   json
// @Param     id   path string                true "room type id"
// @Param     body body service.RoomTypePatch true "fields to change"
// @Success   200 {object} model.RoomType
// @Failure   400,404,409 {object} errorPayload
// @Security  ApiKeyAuth
// @Router    /api/v1/room-types/{id} [patch]
func UpdateRoomType(svc service.RoomTypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		var patch service.RoomTypePatch
		if err := decodeBody(c, &patch); err != nil {
			return err
		}
		rt, err := svc.Update(c.UserContext(), id, patch)
		if err != nil {
			return err
		}
		return c.JSON(rt)
	}
}

// DeleteRoomType removes a room type no room refers to.
//
// @Summary   Delete a room type
// @Tags      room-types
// @Param     id path string true "room type id"
// @Success   204
// @Failure   400,404,409 {object} errorPayload
// @Security  ApiKeyAuth
// @Router    /api/v1/room-types/{id} [delete]
func DeleteRoomType(svc service.RoomTypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
