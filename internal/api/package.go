package api

import (
	"context"       // Context for Redis operations
	"net/http"      // HTTP status codes
	"os"            // Removing replaced image files
	"path/filepath" // Upload path handling
	"strconv"       // String conversion
	"time"          // Time durations

	"github.com/satya-datta/beyond-dreams/internal/domain" // Importing domain models
	"github.com/satya-datta/beyond-dreams/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library

	"github.com/sirupsen/logrus" // Logging library
)

// PackageListItem is one row of the paginated package listing
type PackageListItem struct {
	PackageID   uint      `json:"package_id"`   // Package ID
	PackageName string    `json:"package_name"` // Package name
	CreatedTime time.Time `json:"created_time"` // Creation time
	ImagePath   string    `json:"image_path"`   // Image path
	Commission  float64   `json:"commission"`   // Admin-set commission percentage
	Courses     []string  `json:"courses"`      // Mapped course names
}

// Request struct for course mapping
type CourseMappingRequest struct {
	PackageID uint   `json:"packageId" binding:"required"`
	Courses   []uint `json:"courses" binding:"required"`
}

// invalidatePackageCache drops cached listing pages after a package write
func invalidatePackageCache(c *gin.Context) {
	if v, ok := c.Get("redisClient"); ok {
		if rdb, ok := v.(*redis.Client); ok {
			utils.InvalidatePackageListCache(context.Background(), rdb)
		}
	}
}

// CreatePackageHandler creates a package with an uploaded image
func CreatePackageHandler(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		packageName := c.PostForm("packageName")
		priceStr := c.PostForm("price")
		description := c.PostForm("description")
		commissionStr := c.PostForm("commission")
		imageFile, err := c.FormFile("image")
		if err != nil || imageFile == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Image is required."})
			return
		}
		// Validation checks
		if packageName == "" || priceStr == "" || description == "" || commissionStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields, including the image, are required."})
			return
		}
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid price."})
			return
		}
		commission, err := strconv.ParseFloat(commissionStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid commission."})
			return
		}
		// Store the image and keep its path in the row
		filename := utils.UploadFilename(imageFile.Filename)
		if err := c.SaveUploadedFile(imageFile, filepath.Join(uploadDir, filename)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading package image"})
			return
		}
		imagePath := "/uploads/" + filename
		pkg := domain.Package{
			Name:        packageName,
			Price:       price,
			Description: description,
			Commission:  commission,
			ImagePath:   imagePath,
		}
		if err := db.Create(&pkg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while creating the package."})
			return
		}
		invalidatePackageCache(c)
		c.JSON(http.StatusCreated, gin.H{
			"message":    "Package created successfully.",
			"package_id": pkg.ID,
			"imageUrl":   imagePath,
		})
	}
}

// UpdatePackageHandler rewrites a package; a new image replaces the old file
func UpdatePackageHandler(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		packageID, err := strconv.ParseUint(c.Param("package_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Package ID is missing!"})
			return
		}
		packageName := c.PostForm("packageName")
		priceStr := c.PostForm("price")
		description := c.PostForm("description")
		commissionStr := c.PostForm("commission")
		// Validate input
		if packageName == "" || priceStr == "" || description == "" || commissionStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required."})
			return
		}
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid price."})
			return
		}
		commission, err := strconv.ParseFloat(commissionStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid commission."})
			return
		}
		var pkg domain.Package // Check existing package
		if err := db.First(&pkg, packageID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Package not found."})
			return
		}
		imagePath := pkg.ImagePath
		// A new image replaces the old one on disk
		if imageFile, err := c.FormFile("image"); err == nil && imageFile != nil {
			filename := utils.UploadFilename(imageFile.Filename)
			if err := c.SaveUploadedFile(imageFile, filepath.Join(uploadDir, filename)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading package image"})
				return
			}
			// Best-effort removal of the replaced file
			if old := filepath.Base(pkg.ImagePath); old != "" && old != "." && old != "/" {
				if err := os.Remove(filepath.Join(uploadDir, old)); err != nil {
					logrus.WithFields(logrus.Fields{"file": old, "error": err.Error()}).Warn("Failed to delete old package image")
				}
			}
			imagePath = "/uploads/" + filename
		}
		updates := map[string]any{
			"name":        packageName,
			"price":       price,
			"description": description,
			"commission":  commission,
			"image_path":  imagePath,
		}
		if err := db.Model(&pkg).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update package."})
			return
		}
		invalidatePackageCache(c)
		c.JSON(http.StatusOK, gin.H{
			"message":  "Package updated successfully.",
			"imageUrl": imagePath,
		})
	}
}

// DeletePackageHandler removes a package and its course mappings atomically
func DeletePackageHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		packageID, err := strconv.ParseUint(c.Param("package_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Package ID is missing!"})
			return
		}
		// Mappings and the package row go together or not at all
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("package_id = ?", packageID).Delete(&domain.PackageCourse{}).Error; err != nil {
				return err // Return error to rollback
			}
			return tx.Delete(&domain.Package{}, packageID).Error
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"package_id": packageID,
				"error":      err.Error(),
			}).Error("Package deletion failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while deleting the package."})
			return
		}
		invalidatePackageCache(c)
		c.JSON(http.StatusOK, gin.H{"message": "Package and related courses deleted successfully."})
	}
}

// ListPackagesHandler returns packages with their mapped course names,
// paginated and filtered by name, cached for 60s
func ListPackagesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := 1  // Default page
		limit := 5 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		if l := c.Query("limit"); l != "" {
			if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
				limit = v // Set page size if valid
			}
		}
		searchTerm := c.Query("searchTerm")
		ctx := context.Background()
		cacheKey := utils.PackageListCacheKey(page, limit, searchTerm)
		var cached struct {
			Packages    []PackageListItem `json:"packages"`
			TotalPages  int               `json:"totalPages"`
			CurrentPage int               `json:"currentPage"`
		}
		// Try to get from cache
		if rdb != nil {
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, gin.H{
					"packages":    cached.Packages,
					"totalPages":  cached.TotalPages,
					"currentPage": cached.CurrentPage,
					"cached":      true,
				})
				return
			}
		}
		var total int64
		// Count matching packages for pagination
		if err := db.Model(&domain.Package{}).Where("name LIKE ?", "%"+searchTerm+"%").Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while fetching the total number of packages."})
			return
		}
		var pkgs []domain.Package
		// Fetch the page, newest first
		if err := db.Where("name LIKE ?", "%"+searchTerm+"%").
			Order("created_at desc").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&pkgs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while fetching the packages."})
			return
		}
		// Fetch course names for the fetched packages in one joined query
		ids := make([]uint, len(pkgs))
		for i, p := range pkgs {
			ids[i] = p.ID
		}
		type mappingRow struct {
			PackageID  uint
			CourseName string
		}
		var rows []mappingRow
		if len(ids) > 0 {
			if err := db.Table("package_courses").
				Select("package_courses.package_id, course.name AS course_name").
				Joins("JOIN course ON course.id = package_courses.course_id").
				Where("package_courses.package_id IN ?", ids).
				Scan(&rows).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while fetching the packages."})
				return
			}
		}
		courseNames := make(map[uint][]string)
		for _, r := range rows {
			courseNames[r.PackageID] = append(courseNames[r.PackageID], r.CourseName)
		}
		items := make([]PackageListItem, len(pkgs))
		for i, p := range pkgs {
			names := courseNames[p.ID]
			if names == nil {
				names = []string{} // Handle empty courses
			}
			items[i] = PackageListItem{
				PackageID:   p.ID,
				PackageName: p.Name,
				CreatedTime: p.CreatedAt,
				ImagePath:   p.ImagePath,
				Commission:  p.Commission,
				Courses:     names,
			}
		}
		totalPages := (int(total) + limit - 1) / limit // Round up the division result
		resp := gin.H{
			"packages":    items,
			"totalPages":  totalPages,
			"currentPage": page,
			"cached":      false,
		}
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second) // Cache the result for 60 seconds
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetPackageHandler returns a single package with its mapped courses
func GetPackageHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		packageID, err := strconv.ParseUint(c.Param("package_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Package ID is missing!"})
			return
		}
		var pkg domain.Package
		if err := db.First(&pkg, packageID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Package not found."})
			return
		}
		// Mapped courses, id + name
		type courseRow struct {
			CourseID   uint   `json:"course_id"`
			CourseName string `json:"course_name"`
		}
		var courses []courseRow
		if err := db.Table("package_courses").
			Select("course.id AS course_id, course.name AS course_name").
			Joins("JOIN course ON course.id = package_courses.course_id").
			Where("package_courses.package_id = ?", packageID).
			Scan(&courses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while fetching the package details."})
			return
		}
		if courses == nil {
			courses = []courseRow{}
		}
		c.JSON(http.StatusOK, gin.H{
			"package_id":    pkg.ID,
			"package_name":  pkg.Name,
			"package_price": pkg.Price,
			"description":   pkg.Description,
			"commission":    pkg.Commission,
			"image_path":    pkg.ImagePath,
			"created_time":  pkg.CreatedAt,
			"courses":       courses,
		})
	}
}

// MapCoursesHandler maps a set of existing courses to a package
func MapCoursesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CourseMappingRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Courses) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Package ID and selected courses are required."})
			return
		}
		// Check if the package exists
		var pkg domain.Package
		if err := db.First(&pkg, req.PackageID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Package not found."})
			return
		}
		// All referenced courses must exist
		var count int64
		if err := db.Model(&domain.Course{}).Where("id IN ?", req.Courses).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while checking the courses."})
			return
		}
		if int(count) != len(req.Courses) {
			c.JSON(http.StatusNotFound, gin.H{"message": "One or more courses not found."})
			return
		}
		mappings := make([]domain.PackageCourse, len(req.Courses))
		for i, courseID := range req.Courses {
			mappings[i] = domain.PackageCourse{PackageID: req.PackageID, CourseID: courseID}
		}
		if err := db.Create(&mappings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while mapping courses."})
			return
		}
		invalidatePackageCache(c)
		c.JSON(http.StatusOK, gin.H{"message": "Courses successfully mapped to the package."})
	}
}

// Request struct for unmapping courses
type RemoveCoursesRequest struct {
	Courses []uint `json:"courses" binding:"required"`
}

// RemoveCoursesHandler removes selected course mappings from a package
func RemoveCoursesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		packageID, err := strconv.ParseUint(c.Param("package_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Package ID is missing!"})
			return
		}
		var req RemoveCoursesRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Courses) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "No courses selected for deletion."})
			return
		}
		// Validate the existence of the package
		var pkg domain.Package
		if err := db.First(&pkg, packageID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Package not found."})
			return
		}
		res := db.Where("package_id = ? AND course_id IN ?", packageID, req.Courses).Delete(&domain.PackageCourse{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while deleting the courses."})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "No matching courses found in the package."})
			return
		}
		invalidatePackageCache(c)
		c.JSON(http.StatusOK, gin.H{"message": "Selected courses removed from the package successfully."})
	}
}

// ListCourseOptionsHandler returns id+name pairs for the mapping UI
func ListCourseOptionsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		type option struct {
			CourseID   uint   `json:"course_id"`
			CourseName string `json:"course_name"`
		}
		var options []option
		if err := db.Model(&domain.Course{}).Select("id AS course_id, name AS course_name").Scan(&options).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while fetching the courses."})
			return
		}
		c.JSON(http.StatusOK, options)
	}
}
