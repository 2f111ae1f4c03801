package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"github.com/satya-datta/beyond-dreams/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Request struct for course creation/update
type CourseRequest struct {
	CourseName        string `json:"course_name" binding:"required"`
	CourseDescription string `json:"course_description" binding:"required"`
	Instructor        string `json:"instructor" binding:"required"`
}

// Request struct for topic creation
type TopicRequest struct {
	TopicName string `json:"topic_name" binding:"required"`
	VideoURL  string `json:"video_url" binding:"required"`
	CourseID  uint   `json:"course_id" binding:"required"`
}

// CreateCourseHandler creates a course
func CreateCourseHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CourseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
			return
		}
		course := domain.Course{Name: req.CourseName, Description: req.CourseDescription, Instructor: req.Instructor}
		if err := db.Create(&course).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while creating the course"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":   "Course created successfully",
			"course_id": course.ID,
		})
	}
}

// GetAllCoursesHandler returns all courses
func GetAllCoursesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var courses []domain.Course
		if err := db.Find(&courses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Courses fetched successfully", "courses": courses})
	}
}

// GetCourseHandler returns a single course by id
func GetCourseHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		courseID, err := strconv.ParseUint(c.Param("course_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Course ID is required"})
			return
		}
		var course domain.Course
		if err := db.First(&course, courseID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Course not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Course fetched successfully",
			"course": gin.H{
				"id":          course.ID,
				"name":        course.Name,
				"description": course.Description,
				"instructor":  course.Instructor,
			},
		})
	}
}

// UpdateCourseHandler rewrites a course's details
func UpdateCourseHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		courseID, err := strconv.ParseUint(c.Param("course_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Course ID is required"})
			return
		}
		var req CourseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
			return
		}
		res := db.Model(&domain.Course{}).Where("id = ?", courseID).Updates(map[string]any{
			"name":        req.CourseName,
			"description": req.CourseDescription,
			"instructor":  req.Instructor,
		})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Course not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Course updated successfully",
			"updatedFields": gin.H{
				"course_name":        req.CourseName,
				"course_description": req.CourseDescription,
				"instructor":         req.Instructor,
			},
		})
	}
}

// DeleteCourseHandler removes a course
func DeleteCourseHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		courseID, err := strconv.ParseUint(c.Param("course_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Course ID is required"})
			return
		}
		res := db.Delete(&domain.Course{}, courseID)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Course not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":         "Course deleted successfully",
			"deletedCourseId": courseID,
		})
	}
}

// CreateTopicHandler creates a topic under an existing course
func CreateTopicHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TopicRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
			return
		}
		// The topic must hang off an existing course
		var course domain.Course
		if err := db.First(&course, req.CourseID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Course not found"})
			return
		}
		topic := domain.Topic{Name: req.TopicName, VideoURL: req.VideoURL, CourseID: req.CourseID}
		if err := db.Create(&topic).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while creating the topic"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":  "Topic created successfully",
			"topic_id": topic.ID,
		})
	}
}

// GetTopicsHandler returns all topics for a course
func GetTopicsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		courseID, err := strconv.ParseUint(c.Param("course_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Course ID is required"})
			return
		}
		var topics []domain.Topic
		if err := db.Where("course_id = ?", courseID).Find(&topics).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Topics fetched successfully", "topics": topics})
	}
}

// DeleteTopicHandler removes a topic
func DeleteTopicHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		topicID, err := strconv.ParseUint(c.Param("topic_id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Topic ID is required"})
			return
		}
		res := db.Delete(&domain.Topic{}, topicID)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Topic not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":        "Topic deleted successfully",
			"deletedTopicId": topicID,
		})
	}
}
