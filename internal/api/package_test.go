package api_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/satya-datta/beyond-dreams/internal/api"
	"github.com/satya-datta/beyond-dreams/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPackageRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	r := gin.New()
	uploadDir := t.TempDir()
	r.POST("/create-package", api.CreatePackageHandler(db, uploadDir))
	r.PUT("/update-package/:package_id", api.UpdatePackageHandler(db, uploadDir))
	r.DELETE("/delete-package/:package_id", api.DeletePackageHandler(db))
	r.GET("/packages-with-courses", api.ListPackagesHandler(db, nil))
	r.GET("/package/:package_id", api.GetPackageHandler(db))
	r.POST("/course-mapping", api.MapCoursesHandler(db))
	r.DELETE("/package-courses/:package_id", api.RemoveCoursesHandler(db))
	r.GET("/courses", api.ListCourseOptionsHandler(db))
	return r
}

// performMultipart sends a multipart request with form fields and an
// optional image file
func performMultipart(t *testing.T, r http.Handler, method, path string, fields map[string]string, withImage bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if withImage {
		fw, err := mw.CreateFormFile("image", "cover.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func packageFields() map[string]string {
	return map[string]string{
		"packageName": "Gold",
		"price":       "100",
		"description": "Everything included",
		"commission":  "10",
	}
}

func TestCreatePackage(t *testing.T) {
	db := newTestDB(t)
	r := newPackageRouter(t, db)

	// Image is mandatory
	w := performMultipart(t, r, http.MethodPost, "/create-package", packageFields(), false)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Missing fields
	fields := packageFields()
	delete(fields, "price")
	w = performMultipart(t, r, http.MethodPost, "/create-package", fields, true)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Valid create stores the row and the image path
	w = performMultipart(t, r, http.MethodPost, "/create-package", packageFields(), true)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	require.NotZero(t, body["package_id"])
	require.Contains(t, body["imageUrl"], "/uploads/")

	var pkg domain.Package
	require.NoError(t, db.First(&pkg, uint(body["package_id"].(float64))).Error)
	require.Equal(t, float64(100), pkg.Price)
	require.NotEmpty(t, pkg.ImagePath)
}

func TestDeletePackage_RemovesMappings(t *testing.T) {
	db := newTestDB(t)
	r := newPackageRouter(t, db)

	pkg := domain.Package{Name: "Gold", Price: 100, ImagePath: "/uploads/x.png"}
	require.NoError(t, db.Create(&pkg).Error)
	course := domain.Course{Name: "Go Basics", Instructor: "Priya"}
	require.NoError(t, db.Create(&course).Error)
	require.NoError(t, db.Create(&domain.PackageCourse{PackageID: pkg.ID, CourseID: course.ID}).Error)

	w := performJSON(r, http.MethodDelete, "/delete-package/"+itoa(pkg.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var pkgCount, mapCount int64
	require.NoError(t, db.Model(&domain.Package{}).Count(&pkgCount).Error)
	require.NoError(t, db.Model(&domain.PackageCourse{}).Count(&mapCount).Error)
	require.Zero(t, pkgCount)
	require.Zero(t, mapCount)
}

func TestCourseMapping(t *testing.T) {
	db := newTestDB(t)
	r := newPackageRouter(t, db)

	pkg := domain.Package{Name: "Gold", Price: 100, ImagePath: "/uploads/x.png"}
	require.NoError(t, db.Create(&pkg).Error)
	course := domain.Course{Name: "Go Basics", Instructor: "Priya"}
	require.NoError(t, db.Create(&course).Error)

	// Unknown package
	w := performJSON(r, http.MethodPost, "/course-mapping", map[string]any{"packageId": 999, "courses": []uint{course.ID}})
	require.Equal(t, http.StatusNotFound, w.Code)

	// Unknown course in the set
	w = performJSON(r, http.MethodPost, "/course-mapping", map[string]any{"packageId": pkg.ID, "courses": []uint{course.ID, 999}})
	require.Equal(t, http.StatusNotFound, w.Code)

	// Valid mapping
	w = performJSON(r, http.MethodPost, "/course-mapping", map[string]any{"packageId": pkg.ID, "courses": []uint{course.ID}})
	require.Equal(t, http.StatusOK, w.Code)
	var count int64
	require.NoError(t, db.Model(&domain.PackageCourse{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	// The package view now includes the course
	w = performJSON(r, http.MethodGet, "/package/"+itoa(pkg.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	courses := decodeBody(t, w)["courses"].([]any)
	require.Len(t, courses, 1)

	// Unmapping removes it again
	w = performJSON(r, http.MethodDelete, "/package-courses/"+itoa(pkg.ID), map[string]any{"courses": []uint{course.ID}})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.Model(&domain.PackageCourse{}).Count(&count).Error)
	require.Zero(t, count)

	// A second unmap finds nothing
	w = performJSON(r, http.MethodDelete, "/package-courses/"+itoa(pkg.ID), map[string]any{"courses": []uint{course.ID}})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPackagesWithCourses(t *testing.T) {
	db := newTestDB(t)
	r := newPackageRouter(t, db)

	gold := domain.Package{Name: "Gold", Price: 100, Commission: 10, ImagePath: "/uploads/g.png"}
	require.NoError(t, db.Create(&gold).Error)
	silver := domain.Package{Name: "Silver", Price: 50, Commission: 5, ImagePath: "/uploads/s.png"}
	require.NoError(t, db.Create(&silver).Error)
	course := domain.Course{Name: "Go Basics", Instructor: "Priya"}
	require.NoError(t, db.Create(&course).Error)
	require.NoError(t, db.Create(&domain.PackageCourse{PackageID: gold.ID, CourseID: course.ID}).Error)

	w := performJSON(r, http.MethodGet, "/packages-with-courses?page=1&limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, float64(1), body["totalPages"])
	packages := body["packages"].([]any)
	require.Len(t, packages, 2)

	// Search narrows the listing
	w = performJSON(r, http.MethodGet, "/packages-with-courses?searchTerm=Gold", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	packages = body["packages"].([]any)
	require.Len(t, packages, 1)
	item := packages[0].(map[string]any)
	require.Equal(t, "Gold", item["package_name"])
	require.Equal(t, []any{"Go Basics"}, item["courses"])
}
