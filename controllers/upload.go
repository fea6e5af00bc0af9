package controllers

import (
	"mime/multipart"

	"github.com/healix-care/healix-backend/utils"
)

// uploadFormFile streams a multipart upload to Cloudinary and returns
// the stored secure URL.
func uploadFormFile(fh *multipart.FileHeader, publicID, folder string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return utils.UploadToCloudinary(f, publicID, folder)
}
