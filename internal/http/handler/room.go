package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hotelapi/internal/service"
)

// ListRooms returns a filtered page of rooms.
//
// @Summary   List rooms
// @Tags      rooms
// @Produce   json
// @Param     limit    query int    false "page size (1..100)" default(10)
// @Param     offset   query int    false "items to skip" default(0)
// @Param     search   query string false "case-insensitive substring of the name"
// @Param     roomType query string false "room type id"
// @Param     minPrice query number false "lowest price"
// @Param     maxPrice query number false "highest price"
// @Success   200 {object} service.ListResult[model.Room]
// @Failure   400 {object} errorPayload
// @Security  ApiKeyAuth
// @Router    /api/v1/rooms [get]
func ListRooms(svc service.RoomService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := parsePage(c)
		if err != nil {
			return err
		}
		q := service.RoomQuery{Limit: limit, Offset: offset, Search: c.Query("search")}

		if rt := c.Query("roomType"); rt != "" {
			if _, err := uuid.Parse(rt); err != nil {
				return invalidQuery("roomType must be a room type id")
			}
			q.RoomType = rt
		}
		if q.MinPrice, err = queryFloat(c, "minPrice"); err != nil {
			return err
		}
		if q.MaxPrice, err = queryFloat(c, "maxPrice"); err != nil {
			return err
		}
		if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
			return invalidQuery("minPrice must not exceed maxPrice")
		}

		res, err := svc.List(c.UserContext(), q)
		if err != nil {
			return err
		}
		return c.JSON(res)
	}
}

// GetRoom returns one room by id.
//
// @Summary   Get a room
// @Tags      rooms
// @Produce   json
// @Param     id path string true "room id"
// @Success   200 {object} model.Room
// @Failure   400,404 {object} errorPayload
// @Security  ApiKeyAuth
// @Router    /api/v1/rooms/{id} [get]
func GetRoom(svc service.RoomService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		room, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(room)
	}
}

// CreateRoom stores a new room.
//
// @Summary   Create a room
// @Tags      rooms
// @Accept    json
// @Produce   json
// @Param     body body service.RoomInput true "room"
// @Success   201 {object} model.Room
// @Failure   400 {object} errorPayload
// @Security  ApiKeyAuth
// @Router    /api/v1/rooms [post]
func CreateRoom(svc service.RoomService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RoomInput
		if err := decodeBody(c, &in); err != nil {
			return err
		}
		room, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(room)
	}
}

// ReplaceRoom overwrites every field except images.
//
// @Summary   Replace a room
// @Tags      rooms
// @Accept    json
// @Produce   json
// @Param     id   path string            true "room id"
// @Param     body body service.RoomInput true "room"
// @Success   200 {object} model.Room
// @Failure   400,404 {object} errorPayload
// @Security  ApiKeyAuth
// @Router    /api/v1/rooms/{id} [put]
func ReplaceRoom(svc service.RoomService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		var in service.RoomInput
		if err := decodeBody(c, &in); err != nil {
			return err
		}
		room, err := svc.Replace(c.UserContext(), id, in)
		if err != nil {
			return err
		}
		return c.JSON(room)
	}
}

// UpdateRoom applies a partial update.
//
// @Summary   Update a room
// @Tags      rooms
// @Accept    json
// @Produce   json
// @Param     id   path string            true "room id"
// @Param     body body service.RoomPatch true "fields to change"
// @Success   200 {object} model.Room
// @Failure   400,404 {object} errorPayload
// @Security  ApiKeyAuth
// @Router    /api/v1/rooms/{id} [patch]
func UpdateRoom(svc service.RoomService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		var patch service.RoomPatch
		if err := decodeBody(c, &patch); err != nil {
			return err
		}
		room, err := svc.Update(c.UserContext(), id, patch)
		if err != nil {
			return err
		}
		return c.JSON(room)
	}
}

// DeleteRoom removes a room.
//
// @Summary   Delete a room and its images
// @Tags      rooms
// @Param     id path string true "room id"
// @Success   204
// @Failure   400,404 {object} errorPayload
// @Security  ApiKeyAuth
// @Router    /api/v1/rooms/{id} [delete]
func DeleteRoom(svc service.RoomService) fiber.Handler {
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

// UploadRoomImage accepts multipart/form-data with the image in field "file".
//
// @Summary   Upload a room image
// @Tags      rooms
// @Accept    mpfd
// @Produce   json
// @Param     id   path     string true "room id"
// @Param     file formData file   true "image"
// @Success   201 {object} model.Room
// @Failure   400,404,503 {object} errorPayload
// @Security  ApiKeyAuth
// @Router    /api/v1/rooms/{id}/images [post]
func UploadRoomImage(svc service.RoomService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return errFileRequired
		}

		f, err := fh.Open()
		if err != nil {
			return errFileRequired
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		room, err := svc.UploadImage(c.UserContext(), id, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(room)
	}
}

// ListRoomImages returns time-limited download URLs.
//
// @Summary   Presigned image URLs of a room
// @Tags      rooms
// @Produce   json
// @Param     id path string true "room id"
// @Success   200 {object} map[string][]service.ImageLink
// @Failure   400,404,503 {object} errorPayload
// @Security  ApiKeyAuth
// @Router    /api/v1/rooms/{id}/images [get]
func ListRoomImages(svc service.RoomService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		links, err := svc.ListImages(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": links})
	}
}

// DeleteRoomImage removes one image from storage and from the room.
//
// @Summary   Delete a room image
// @Tags      rooms
// @Produce   json
// @Param     id   path string true "room id"
// @Param     name path string true "image file name"
// @Success   200 {object} model.Room
// @Failure   400,404,503 {object} errorPayload
// @Security  ApiKeyAuth
// @Router    /api/v1/rooms/{id}/images/{name} [delete]
func DeleteRoomImage(svc service.RoomService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		room, err := svc.DeleteImage(c.UserContext(), id, c.Params("name"))
		if err != nil {
			return err
		}
		return c.JSON(room)
	}
}
