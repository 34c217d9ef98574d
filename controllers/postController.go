package controllers

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"servedc-be/classifier"
	"servedc-be/models"
	"servedc-be/store"
	idUtils "servedc-be/utils"

	"github.com/gin-gonic/gin"
)

const anonymousAlias = "anonymous_neighbor"

var postStore *store.Store
var enricher *classifier.Client

// Init wires the shared store and enrichment client used by the post handlers.
func Init(s *store.Store, c *classifier.Client) {
	postStore = s
	enricher = c
}

// CreatePost handles the creation of a new announcement. The content is
// always run through enrichment; a manually chosen category overrides the
// enriched one, and an explicitly supplied location (e.g. device GPS)
// overrides any extracted one. Classification can degrade but never blocks
// the post.
func CreatePost(c *gin.Context) {
	var input struct {
		Content     string           `json:"content" binding:"required,max=2000"`
		AuthorAlias string           `json:"authorAlias" binding:"max=60"`
		Category    string           `json:"category,omitempty"`
		Address     string           `json:"address,omitempty"`
		Location    *models.Location `json:"location,omitempty"`
		Media       *models.Media    `json:"media,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(input.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post content cannot be empty"})
		return
	}

	// "Auto" (or absent) defers the category to enrichment.
	var manualCategory models.Category
	if input.Category != "" && input.Category != "Auto" {
		cat, ok := models.ParseCategory(input.Category)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
			return
		}
		manualCategory = cat
	}

	if input.Media != nil && input.Media.Type != models.MediaImage && input.Media.Type != models.MediaVideo {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid media type"})
		return
	}

	if input.Location != nil && input.Location.Lat == 0 && input.Location.Lng == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Runs even with a manual category: the enriched location may still be
	// useful. Enrich never fails; worst case is General with no location.
	enriched := enricher.Enrich(ctx, input.Content, input.Address)

	category := enriched.Category
	if manualCategory != "" {
		category = manualCategory
	}

	location := input.Location
	if location == nil {
		location = enriched.Location
	}

	alias := strings.TrimSpace(input.AuthorAlias)
	if alias == "" {
		alias = anonymousAlias
	}

	post := models.Post{
		ID:          idUtils.NewID(),
		Content:     input.Content,
		Category:    category,
		AuthorAlias: alias,
		Location:    location,
		Media:       input.Media,
		Replies:     []models.Reply{},
		Timestamp:   time.Now().UnixMilli(),
		IsSolved:    false,
	}

	postStore.AddPost(post)

	c.JSON(http.StatusCreated, post)
}

// ListPosts returns the feed with filtering, search, sorting and pagination,
// each post annotated with whether this client has seen it and whether it
// posted it.
func ListPosts(c *gin.Context) {
	category := c.Query("category")
	search := strings.ToLower(c.Query("search"))
	sortOrder := c.DefaultQuery("sort", "newest")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	state := postStore.State()

	filtered := make([]models.Post, 0, len(state.Posts))
	for _, post := range state.Posts {
		if category != "" && category != "all" && string(post.Category) != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(post.Content), search) &&
			!strings.Contains(strings.ToLower(post.AuthorAlias), search) {
			continue
		}
		filtered = append(filtered, post)
	}

	// State holds posts newest first already.
	if sortOrder == "oldest" {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	totalPosts := len(filtered)
	totalPages := (totalPosts + limit - 1) / limit

	start := (page - 1) * limit
	if start > totalPosts {
		start = totalPosts
	}
	end := start + limit
	if end > totalPosts {
		end = totalPosts
	}

	seen := make(map[string]bool, len(state.SeenPostIDs))
	for _, id := range state.SeenPostIDs {
		seen[id] = true
	}
	mine := make(map[string]bool, len(state.MyAliases))
	for _, alias := range state.MyAliases {
		mine[alias] = true
	}

	type PostView struct {
		models.Post
		Seen bool `json:"seen"`
		Mine bool `json:"mine"`
	}

	posts := make([]PostView, 0, end-start)
	for _, post := range filtered[start:end] {
		posts = append(posts, PostView{
			Post: post,
			Seen: seen[post.ID],
			Mine: mine[post.AuthorAlias],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":       posts,
		"totalPosts":  totalPosts,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

// GetPost retrieves a single post by id.
func GetPost(c *gin.Context) {
	id := c.Param("id")
	state := postStore.State()

	for _, post := range state.Posts {
		if post.ID == id {
			c.JSON(http.StatusOK, post)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
}

// MarkPostSeen records the post as viewed by this client. Repeated and
// unknown ids are no-ops, never errors.
func MarkPostSeen(c *gin.Context) {
	postStore.MarkSeen(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Post marked as seen"})
}

// MarkPostSolved flips the post's solved flag. Idempotent.
func MarkPostSolved(c *gin.Context) {
	if !postStore.MarkSolved(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post marked as solved", "isSolved": true})
}

// AddReply appends a reply to a post. Blank content is rejected before any
// mutation happens.
func AddReply(c *gin.Context) {
	var input struct {
		Content string `json:"content" binding:"required,max=1000"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(input.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reply content cannot be empty"})
		return
	}

	reply, ok := postStore.AddReply(c.Param("id"), input.Content)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusCreated, reply)
}

// RecentPosts returns the most recent posts that carry a location, projected
// down to what the map view needs.
func RecentPosts(c *gin.Context) {
	limit := 19
	state := postStore.State()

	type MarkerResponse struct {
		ID        string          `json:"id"`
		Content   string          `json:"content"`
		Category  models.Category `json:"category"`
		Lat       float64         `json:"lat"`
		Lng       float64         `json:"lng"`
		Address   string          `json:"address,omitempty"`
		Timestamp int64           `json:"timestamp"`
	}

	response := make([]MarkerResponse, 0, limit)
	for _, post := range state.Posts {
		if post.Location == nil {
			continue
		}
		response = append(response, MarkerResponse{
			ID:        post.ID,
			Content:   post.Content,
			Category:  post.Category,
			Lat:       post.Location.Lat,
			Lng:       post.Location.Lng,
			Address:   post.Location.Address,
			Timestamp: post.Timestamp,
		})
		if len(response) == limit {
			break
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetPostAnalytics returns analytical data about the feed.
func GetPostAnalytics(c *gin.Context) {
	state := postStore.State()

	categoryCounts := make(map[models.Category]int)
	totalReplies := 0
	openPosts := 0
	for _, post := range state.Posts {
		categoryCounts[post.Category]++
		totalReplies += len(post.Replies)
		if !post.IsSolved {
			openPosts++
		}
	}

	postsByCategory := make([]gin.H, 0, len(categoryCounts))
	for _, cat := range models.Categories() {
		if count := categoryCounts[cat]; count > 0 {
			postsByCategory = append(postsByCategory, gin.H{
				"name":  cat,
				"value": count,
			})
		}
	}

	// Creation counts over the last 7 days, oldest day first.
	var last7Days []gin.H
	for i := 6; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i)
		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		nextDate := date.AddDate(0, 0, 1)

		count := 0
		for _, post := range state.Posts {
			if post.Timestamp >= date.UnixMilli() && post.Timestamp < nextDate.UnixMilli() {
				count++
			}
		}

		last7Days = append(last7Days, gin.H{
			"date":  date.Format("2006-01-02"),
			"count": count,
		})
	}

	type PostWithReplyCount struct {
		ID       string          `json:"id"`
		Content  string          `json:"content"`
		Category models.Category `json:"category"`
		Replies  int             `json:"replies"`
	}

	withReplies := make([]PostWithReplyCount, 0, len(state.Posts))
	for _, post := range state.Posts {
		withReplies = append(withReplies, PostWithReplyCount{
			ID:       post.ID,
			Content:  post.Content,
			Category: post.Category,
			Replies:  len(post.Replies),
		})
	}
	sort.Slice(withReplies, func(i, j int) bool {
		return withReplies[i].Replies > withReplies[j].Replies
	})

	topRepliedPosts := withReplies
	if len(withReplies) > 5 {
		topRepliedPosts = withReplies[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"postsByCategory": postsByCategory,
		"last7Days":       last7Days,
		"topRepliedPosts": topRepliedPosts,
		"totalPosts":      len(state.Posts),
		"totalReplies":    totalReplies,
		"openPosts":       openPosts,
	})
}
