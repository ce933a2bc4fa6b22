package content

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"sparkle/db"
	"sparkle/models"
	"sparkle/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAllContent returns every CMS section, seeding the defaults when the
// collection is empty. GET /api/content
func GetAllContent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	count, err := db.ContentCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch content")
		return
	}
	if count == 0 {
		seed := defaultContent()
		docs := make([]interface{}, len(seed))
		for i := range seed {
			docs[i] = seed[i]
		}
		if _, err := db.ContentCollection.InsertMany(ctx, docs); err != nil {
			log.Printf("content seed failed: %v", err)
		}
	}

	cursor, err := db.ContentCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch content")
		return
	}
	defer cursor.Close(ctx)

	sections := []models.Content{}
	if err := cursor.All(ctx, &sections); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode content")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sections)
}

// GetContent returns one section by its stable id. GET /api/content/:contentid
func GetContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var section models.Content
	err := db.ContentCollection.FindOne(ctx, bson.M{"contentid": ps.ByName("contentid")}).Decode(&section)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Content not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch content")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, section)
}

// UpdateContent upserts one section. Admin only. PUT /api/content/:contentid
func UpdateContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var section models.Content
	if err := json.NewDecoder(r.Body).Decode(&section); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	section.ContentID = ps.ByName("contentid")
	section.LastUpdatedAt = time.Now()

	_, err := db.ContentCollection.ReplaceOne(ctx,
		bson.M{"contentid": section.ContentID},
		section,
		options.Replace().SetUpsert(true))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save content")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, section)
}

// BulkUpdateContent upserts many sections in one call, used when the admin
// saves the whole page editor. Admin only. PUT /api/content
func BulkUpdateContent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var sections []models.Content
	if err := json.NewDecoder(r.Body).Decode(&sections); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(sections) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No content sections provided")
		return
	}

	now := time.Now()
	for i := range sections {
		if sections[i].ContentID == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Every section needs a contentId")
			return
		}
		sections[i].LastUpdatedAt = now
		_, err := db.ContentCollection.ReplaceOne(ctx,
			bson.M{"contentid": sections[i].ContentID},
			sections[i],
			options.Replace().SetUpsert(true))
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save content")
			return
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Content updated",
		"count":   len(sections),
	})
}

// DeleteContent removes a section. Admin only. DELETE /api/content/:contentid
func DeleteContent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.ContentCollection.DeleteOne(ctx, bson.M{"contentid": ps.ByName("contentid")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete content")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Content not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Content deleted"})
}
