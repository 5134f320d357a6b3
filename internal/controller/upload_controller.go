package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"imovia_backend/internal/model"
	"imovia_backend/pkg/database"
	"imovia_backend/pkg/utils/imgurl"
	"imovia_backend/pkg/utils/storage"
	"imovia_backend/pkg/utils/validation"
)

// UploadListingImage receives one staged image file, uploads it to the
// image store and returns its public URL. The URL only becomes part of a
// listing when the admin form is submitted; until then it is a staged
// upload the client may discard.
func UploadListingImage(c *fiber.Ctx) error {
	listingID, _ := strconv.ParseUint(c.Query("listing_id", "0"), 10, 32)

	// Cap counts persisted images too when staging against an existing
	// listing.
	if listingID > 0 {
		var imageCount int64
		database.GetDB().Model(&model.ListingImage{}).
			Where("listing_id = ?", listingID).
			Count(&imageCount)

		if imageCount >= model.MaxListingImages {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Maximum image limit reached",
			})
		}
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	url, err := storage.UploadListingImage(c.Context(), file, uint(listingID))
	if err != nil {
		switch err {
		case validation.ErrFileSize, validation.ErrFileType, validation.ErrFileRequired:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not upload image",
		})
	}

	return c.JSON(fiber.Map{
		"url": url,
		"thumb_url": imgurl.Transform(url, "amazonaws.com", imgurl.Options{
			Width:   400,
			Quality: 70,
			Format:  "webp",
		}),
	})
}

// DeleteListingImage removes a persisted image row and its stored object,
// then promotes the next image to cover if needed.
func DeleteListingImage(c *fiber.Ctx) error {
	imageID, err := strconv.ParseUint(c.Params("image_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid image ID",
		})
	}

	var image model.ListingImage
	if err := database.GetDB().First(&image, imageID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Image not found",
		})
	}

	if err := database.GetDB().Unscoped().Delete(&image).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete image",
		})
	}

	// Best effort: a dangling object is preferable to a failed request.
	_ = storage.DeleteImage(c.Context(), image.URL)

	if image.IsCover {
		var next model.ListingImage
		if err := database.GetDB().
			Where("listing_id = ?", image.ListingID).
			Order("listing_images.display_order ASC").
			First(&next).Error; err == nil {
			database.GetDB().Model(&next).Update("is_cover", true)
		}
	}

	invalidateListings()

	return c.SendStatus(fiber.StatusNoContent)
}
