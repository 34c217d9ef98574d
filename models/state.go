package models

import "time"

// AppState is the complete application state: the feed (newest first), the
// ids the current client has viewed, and every alias it has posted under.
// SeenPostIDs and MyAliases only ever grow. The JSON field names match the
// snapshot format of the original web client so existing blobs stay readable.
type AppState struct {
	Posts       []Post   `json:"posts"`
	SeenPostIDs []string `json:"seenPostIds"`
	MyAliases   []string `json:"myAliases"`
}

// Clone returns a deep copy of the state for copy-on-write mutation.
// Location and Media are never modified after creation, so sharing those
// pointers is safe.
func (s *AppState) Clone() *AppState {
	next := &AppState{
		Posts:       make([]Post, len(s.Posts)),
		SeenPostIDs: append([]string{}, s.SeenPostIDs...),
		MyAliases:   append([]string{}, s.MyAliases...),
	}
	copy(next.Posts, s.Posts)
	for i := range next.Posts {
		next.Posts[i].Replies = append([]Reply{}, s.Posts[i].Replies...)
	}
	return next
}

// SeedState returns the starting dataset used when no snapshot exists or the
// stored one cannot be parsed.
func SeedState() *AppState {
	now := time.Now().UnixMilli()
	return &AppState{
		Posts: []Post{
			{
				ID:          "seed-1",
				Content:     "I have 3 extra bags of groceries (canned beans, pasta, rice) near Logan Circle. Free to anyone who needs them! DM me or just stop by the blue bench.",
				Category:    Giveaway,
				AuthorAlias: "logan_neighbor",
				Timestamp:   now - 3600000,
				Replies: []Reply{
					{ID: "r1", Author: "thankful_dc", Content: "This is amazing, thank you!", Timestamp: now - 1800000},
				},
				Location: &Location{Lat: 38.9097, Lng: -77.0297, Address: "Logan Circle NW"},
			},
			{
				ID:          "seed-2",
				Content:     "Uptick in car break-ins near Adams Morgan tonight. Make sure to double check your locks and remove all valuables!",
				Category:    Safety,
				AuthorAlias: "safety_first_nw",
				Timestamp:   now - 7200000,
				Replies:     []Reply{},
				Location:    &Location{Lat: 38.9223, Lng: -77.0425, Address: "Adams Morgan"},
			},
			{
				ID:          "seed-3",
				Content:     "My car is stuck in the mud at Rock Creek Park near the nature center. Does anyone have a tow strap or a 4WD truck that can pull me out?",
				Category:    UrgentHelp,
				AuthorAlias: "stuck_hiker",
				Timestamp:   now - 10800000,
				Replies: []Reply{
					{ID: "r2", Author: "truck_owner_99", Content: "I am 5 mins away, stay put!", Timestamp: now - 9000000},
				},
				Location: &Location{Lat: 38.9431, Lng: -77.0489, Address: "Rock Creek Park"},
			},
			{
				ID:          "seed-4",
				Content:     "Organizing a community clean-up at the Anacostia Riverwalk Trail this Sunday. Trash bags provided, just bring gloves!",
				Category:    SocialImpact,
				AuthorAlias: "eco_dc",
				Timestamp:   now - 15000000,
				Replies:     []Reply{},
				Location:    &Location{Lat: 38.8701, Lng: -76.9855, Address: "Anacostia Riverwalk"},
				IsSolved:    true,
			},
		},
		SeenPostIDs: []string{},
		MyAliases:   []string{},
	}
}
