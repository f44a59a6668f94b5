package catalog

import "github.com/timmy/memeforge/internal/domain"

func twoSlots(x, topY, bottomY, maxWidth int) map[domain.SlotName]domain.TextSlot {
	return map[domain.SlotName]domain.TextSlot{
		domain.SlotTop:    {X: x, Y: topY, MaxWidth: maxWidth},
		domain.SlotBottom: {X: x, Y: bottomY, MaxWidth: maxWidth},
	}
}

func topOnly(x, y, maxWidth int) map[domain.SlotName]domain.TextSlot {
	return map[domain.SlotName]domain.TextSlot{
		domain.SlotTop: {X: x, Y: y, MaxWidth: maxWidth},
	}
}

func bottomOnly(x, y, maxWidth int) map[domain.SlotName]domain.TextSlot {
	return map[domain.SlotName]domain.TextSlot{
		domain.SlotBottom: {X: x, Y: y, MaxWidth: maxWidth},
	}
}

// defaultTemplates is the built-in template set. Image references point at
// the public imgflip mirrors.
var defaultTemplates = []domain.MemeTemplate{
	{
		ID:         "drake",
		Name:       "Drake Hotline Bling",
		ImageURL:   "https://i.imgflip.com/30b1gx.jpg",
		Categories: []string{"Reactions", "Comparisons", "Programming", "Marketing", "Life"},
		TextSlots:  twoSlots(350, 100, 300, 300),
	},
	{
		ID:         "distracted-boyfriend",
		Name:       "Distracted Boyfriend",
		ImageURL:   "https://i.imgflip.com/1ur9b.jpg",
		Categories: []string{"Relationships", "Comparisons", "Programming", "Marketing"},
		TextSlots:  twoSlots(200, 50, 350, 400),
	},
	{
		ID:         "success-kid",
		Name:       "Success Kid",
		ImageURL:   "https://i.imgflip.com/1bhk.jpg",
		Categories: []string{"Success", "Programming", "Work", "Life"},
		TextSlots:  twoSlots(200, 50, 350, 400),
	},
	{
		ID:         "two-buttons",
		Name:       "Two Buttons",
		ImageURL:   "https://i.imgflip.com/1g8my4.jpg",
		Categories: []string{"Decisions", "Programming", "Work", "Life"},
		TextSlots:  twoSlots(200, 100, 250, 300),
	},
	{
		ID:         "change-my-mind",
		Name:       "Change My Mind",
		ImageURL:   "https://i.imgflip.com/24y43o.jpg",
		Categories: []string{"Opinions", "Programming", "Work", "Social Media"},
		TextSlots:  bottomOnly(250, 250, 400),
	},
	{
		ID:         "expanding-brain",
		Name:       "Expanding Brain",
		ImageURL:   "https://i.imgflip.com/1jwhww.jpg",
		Categories: []string{"Intelligence", "Programming", "Marketing", "Life"},
		TextSlots:  twoSlots(250, 100, 400, 400),
	},
	{
		ID:         "one-does-not-simply",
		Name:       "One Does Not Simply",
		ImageURL:   "https://i.imgflip.com/1bij.jpg",
		Categories: []string{"Warnings", "Programming", "Work", "Life"},
		TextSlots:  twoSlots(250, 50, 300, 400),
	},
	{
		ID:         "surprised-pikachu",
		Name:       "Surprised Pikachu",
		ImageURL:   "https://i.imgflip.com/2kbn1e.jpg",
		Categories: []string{"Surprise", "Reactions", "Programming", "Work", "Life"},
		TextSlots:  topOnly(250, 50, 400),
	},
	{
		ID:         "this-is-fine",
		Name:       "This Is Fine",
		ImageURL:   "https://i.imgflip.com/2cp1.jpg",
		Categories: []string{"Stress", "Programming", "Work", "Life"},
		TextSlots:  topOnly(250, 50, 400),
	},
	{
		ID:         "waiting-skeleton",
		Name:       "Waiting Skeleton",
		ImageURL:   "https://i.imgflip.com/2fm6x.jpg",
		Categories: []string{"Waiting", "Programming", "Work", "Life"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "guy-thinking",
		Name:       "Guy Thinking",
		ImageURL:   "https://i.imgflip.com/1h7in3.jpg",
		Categories: []string{"Thinking", "Confusion", "Programming", "Work"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "woman-yelling",
		Name:       "Woman Yelling at Cat",
		ImageURL:   "https://i.imgflip.com/38el31.jpg",
		Categories: []string{"Arguments", "Reactions", "Social Media"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "disaster-girl",
		Name:       "Disaster Girl",
		ImageURL:   "https://i.imgflip.com/23ls.jpg",
		Categories: []string{"Evil", "Chaos", "Programming", "Work"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "roll-safe",
		Name:       "Roll Safe",
		ImageURL:   "https://i.imgflip.com/1h7in3.jpg",
		Categories: []string{"Advice", "Humor", "Programming", "Life"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "shut-up-and-take-my-money",
		Name:       "Shut Up And Take My Money",
		ImageURL:   "https://i.imgflip.com/3si4.jpg",
		Categories: []string{"Excitement", "Products", "Marketing"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "so-hot-right-now",
		Name:       "So Hot Right Now",
		ImageURL:   "https://i.imgflip.com/cv1y0.jpg",
		Categories: []string{"Trends", "Programming", "Marketing"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "matrix-morpheus",
		Name:       "Matrix Morpheus",
		ImageURL:   "https://i.imgflip.com/25w3.jpg",
		Categories: []string{"Advice", "Reality", "Programming"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "y-u-no",
		Name:       "Y U No",
		ImageURL:   "https://i.imgflip.com/1bh3.jpg",
		Categories: []string{"Questions", "Frustration", "Programming"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "hide-the-pain-harold",
		Name:       "Hide the Pain Harold",
		ImageURL:   "https://i.imgflip.com/gk5el.jpg",
		Categories: []string{"Awkward", "Life", "Work", "Social Media"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "ancient-aliens",
		Name:       "Ancient Aliens Guy",
		ImageURL:   "https://i.imgflip.com/26am.jpg",
		Categories: []string{"Conspiracy", "Programming", "Work", "Humor"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "doge",
		Name:       "Doge",
		ImageURL:   "https://i.imgflip.com/4t0m5.jpg",
		Categories: []string{"Animals", "Funny", "Social Media"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "first-world-problems",
		Name:       "First World Problems",
		ImageURL:   "https://i.imgflip.com/1bhf.jpg",
		Categories: []string{"Complaints", "Life", "Social Media", "Humor"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "galaxy-brain",
		Name:       "Galaxy Brain",
		ImageURL:   "https://i.imgflip.com/24sx7.jpg",
		Categories: []string{"Intelligence", "Programming", "Work"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "mocking-spongebob",
		Name:       "Mocking Spongebob",
		ImageURL:   "https://i.imgflip.com/1otk96.jpg",
		Categories: []string{"Mockery", "Social Media", "Arguments"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "change-my-mind-crowder",
		Name:       "Change My Mind - Crowder",
		ImageURL:   "https://i.imgflip.com/24y43o.jpg",
		Categories: []string{"Opinions", "Debate", "Social Media"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "they-dont-know",
		Name:       "They Don't Know",
		ImageURL:   "https://i.imgflip.com/4pn1an.jpg",
		Categories: []string{"Social Anxiety", "Programming", "Work"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "bad-luck-brian",
		Name:       "Bad Luck Brian",
		ImageURL:   "https://i.imgflip.com/1bip.jpg",
		Categories: []string{"Bad Luck", "Failure", "Life"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "finding-neverland",
		Name:       "Finding Neverland",
		ImageURL:   "https://i.imgflip.com/3pnmg.jpg",
		Categories: []string{"Realization", "Emotional", "Life"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "futurama-fry",
		Name:       "Futurama Fry",
		ImageURL:   "https://i.imgflip.com/1bgw.jpg",
		Categories: []string{"Suspicion", "Doubt", "Confusion"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "x-all-the-y",
		Name:       "X All The Y",
		ImageURL:   "https://i.imgflip.com/1bh9.jpg",
		Categories: []string{"Motivation", "Exaggeration", "Programming"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "grandma-internet",
		Name:       "Grandma Finds The Internet",
		ImageURL:   "https://i.imgflip.com/1bhw.jpg",
		Categories: []string{"Technology", "Confusion", "Humor"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "third-world-skeptical",
		Name:       "Third World Skeptical Kid",
		ImageURL:   "https://i.imgflip.com/265k.jpg",
		Categories: []string{"Skepticism", "Disbelief", "Humor"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
	{
		ID:         "steve-harvey",
		Name:       "Steve Harvey Confused",
		ImageURL:   "https://i.imgflip.com/4bh6h.jpg",
		Categories: []string{"Confusion", "Reactions", "Humor"},
		TextSlots:  twoSlots(250, 50, 350, 400),
	},
}
