package seed

import "github.com/sakif/nc-news/internal/model"

// Dev returns a small dataset for local development.
func Dev() Dataset {
	return Dataset{
		Topics: []model.Topic{
			{Slug: "coding", Description: "Code is love, code is life"},
			{Slug: "football", Description: "FOOTIE!"},
			{Slug: "cooking", Description: "Hey good looking, what you got cooking?"},
		},
		Users: []model.User{
			{Username: "tickle122", Name: "Tom Tickle", AvatarURL: "https://vignette.wikia.nocookie.net/mrmen/images/d/d6/Mr-Tickle-9a.png/revision/latest?cb=20180127221953"},
			{Username: "grumpy19", Name: "Paul Grump", AvatarURL: "https://vignette.wikia.nocookie.net/mrmen/images/7/78/Mr-Grumpy-3A.PNG/revision/latest?cb=20170707233013"},
			{Username: "happyamy2016", Name: "Amy Happy", AvatarURL: "https://vignette1.wikia.nocookie.net/mrmen/images/7/7f/Mr_Happy.jpg/revision/latest?cb=20140102171729"},
			{Username: "jessjelly", Name: "Jess Jelly", AvatarURL: "https://vignette.wikia.nocookie.net/mrmen/images/4/4f/MR_JELLY_4A.jpg/revision/latest?cb=20180104121141"},
		},
		Articles: []Article{
			{
				Title:     "Running a Node App",
				Topic:     "coding",
				Author:    "jessjelly",
				Body:      "This is part two of a series on how to get up and running with Systemd and Node.js.",
				CreatedAt: at(1604728980000),
			},
			{
				Title:     "The Rise Of Thinking Machines: How IBM's Watson Takes On The World",
				Topic:     "coding",
				Author:    "jessjelly",
				Body:      "Many people know Watson as the IBM-developed cognitive super computer that won the Jeopardy! gameshow in 2011.",
				CreatedAt: at(1589418120000),
			},
			{
				Title:     "The Notorious MSG's Unspoken Advantage",
				Topic:     "cooking",
				Author:    "grumpy19",
				Body:      "The 'umami' craze has turned a much-maligned and misunderstood food additive into an object of obsession for the health-conscious.",
				CreatedAt: at(1606234860000),
			},
			{
				Title:     "Which current Premier League manager was the best player?",
				Topic:     "football",
				Author:    "happyamy2016",
				Body:      "You may not know it, but some of the current Premier League managers were very good players in their day.",
				CreatedAt: at(1581870000000),
				Votes:     2,
			},
		},
		Comments: []Comment{
			{ArticleID: 1, Author: "tickle122", Votes: -1, CreatedAt: at(1590103140000),
				Body: "Itaque quisquam est similique et est perspiciatis reprehenderit voluptatem autem."},
			{ArticleID: 1, Author: "grumpy19", Votes: 7, CreatedAt: at(1577850060000),
				Body: "Nobis consequatur animi. Ullam nobis quaerat voluptates veniam."},
			{ArticleID: 3, Author: "happyamy2016", Votes: 3, CreatedAt: at(1604394720000),
				Body: "Qui sunt sit voluptas repellendus sed. Voluptatem et repellat fugiat."},
			{ArticleID: 4, Author: "tickle122", CreatedAt: at(1601298120000),
				Body: "Rerum voluptatem quam odio facilis quis illo unde."},
		},
	}
}
