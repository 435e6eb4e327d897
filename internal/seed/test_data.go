package seed

import "github.com/sakif/nc-news/internal/model"

// Test returns the fixed dataset the test suites assert against:
//   - 3 topics; "paper" has no articles
//   - 4 users; "lurker" has written nothing
//   - 13 articles, 12 in "mitch" and article 5 in "cats"
//   - 18 comments, 11 of them on article 1 with distinct timestamps
func Test() Dataset {
	return Dataset{
		Topics: []model.Topic{
			{Slug: "mitch", Description: "The man, the Mitch, the legend"},
			{Slug: "cats", Description: "Not dogs"},
			{Slug: "paper", Description: "what books are made of"},
		},
		Users: []model.User{
			{Username: "butter_bridge", Name: "jonny", AvatarURL: "https://www.healthytherapies.com/wp-content/uploads/2016/06/Lime3.jpg"},
			{Username: "icellusedkars", Name: "sam", AvatarURL: "https://avatars2.githubusercontent.com/u/24604688?s=460&v=4"},
			{Username: "rogersop", Name: "paul", AvatarURL: "https://avatars2.githubusercontent.com/u/24394918?s=400&v=4"},
			{Username: "lurker", Name: "do_nothing", AvatarURL: "https://www.golenbock.com/wp-content/uploads/2015/01/placeholder-user.png"},
		},
		Articles: []Article{
			{
				Title:     "Living in the shadow of a great man",
				Topic:     "mitch",
				Author:    "butter_bridge",
				Body:      "I find this existence challenging",
				CreatedAt: at(1594329060000),
				Votes:     100,
			},
			{
				Title:     "Sony Vaio; or, The Laptop",
				Topic:     "mitch",
				Author:    "icellusedkars",
				Body:      "Call me Mitchell. Some years ago, never mind how long precisely, having little or no money in my purse, and nothing particular to interest me on shore, I thought I would buy a laptop about a little and see the codeless part of the world.",
				CreatedAt: at(1602828180000),
			},
			{
				Title:     "Eight pug gifs that remind me of mitch",
				Topic:     "mitch",
				Author:    "icellusedkars",
				Body:      "some gifs",
				CreatedAt: at(1604394720000),
			},
			{
				Title:     "Student SUES Mitch!",
				Topic:     "mitch",
				Author:    "rogersop",
				Body:      "We all love Mitch and his wonderful, unique typing style. However, the volume of his typing has ALLEGEDLY burst another student's eardrums, and they are now suing for damages",
				CreatedAt: at(1588731240000),
			},
			{
				Title:     "UNCOVERED: catspiracy to bring down democracy",
				Topic:     "cats",
				Author:    "rogersop",
				Body:      "Bastet walks amongst us, and the cats are taking arms!",
				CreatedAt: at(1596464040000),
			},
			{
				Title:     "A",
				Topic:     "mitch",
				Author:    "icellusedkars",
				Body:      "Delicious tin of cat food",
				CreatedAt: at(1602986400000),
			},
			{
				Title:     "Z",
				Topic:     "mitch",
				Author:    "icellusedkars",
				Body:      "I was hungry.",
				CreatedAt: at(1578406080000),
			},
			{
				Title:     "Does Mitch predate civilisation?",
				Topic:     "mitch",
				Author:    "icellusedkars",
				Body:      "Archaeologists have uncovered a gigantic statue from the dawn of humanity, and it has an uncanny resemblance to Mitch. Surely I am not the only person who can see this?!",
				CreatedAt: at(1587089280000),
			},
			{
				Title:     "They're not exactly dogs, are they?",
				Topic:     "mitch",
				Author:    "butter_bridge",
				Body:      "Well? Think about it.",
				CreatedAt: at(1591438200000),
			},
			{
				Title:     "Seven inspirational thought leaders from Manchester UK",
				Topic:     "mitch",
				Author:    "rogersop",
				Body:      "Who are we kidding, there is only one, and it's Mitch!",
				CreatedAt: at(1589433300000),
			},
			{
				Title:     "Am I a cat?",
				Topic:     "mitch",
				Author:    "icellusedkars",
				Body:      "Having run out of ideas for articles, I am staring at the wall blankly, like a cat. Does this make me a cat?",
				CreatedAt: at(1579126860000),
			},
			{
				Title:     "Moustache",
				Topic:     "mitch",
				Author:    "butter_bridge",
				Body:      "Have you seen the size of that thing?",
				CreatedAt: at(1602419040000),
			},
			{
				Title:     "Another article about Mitch",
				Topic:     "mitch",
				Author:    "butter_bridge",
				Body:      "There will never be enough articles about Mitch!",
				CreatedAt: at(1602419040000),
			},
		},
		Comments: []Comment{
			{ArticleID: 9, Author: "butter_bridge", Votes: 16, CreatedAt: at(1586179020000),
				Body: "Oh, I've got compassion running out of my ears. You're a sucker for a good sob story, aren't you?"},
			{ArticleID: 1, Author: "butter_bridge", Votes: 14, CreatedAt: at(1604113380000),
				Body: "The beautiful thing about treasure is that it exists. Got to find out what kind of sheep-dogs the cats are."},
			{ArticleID: 1, Author: "icellusedkars", Votes: 100, CreatedAt: at(1583025180000),
				Body: "Replacing the quiet elegance of the dark suit and tie with the casual indifference of these muted earth tones is a form of fashion suicide, but, uh, call me crazy, on you it works."},
			{ArticleID: 1, Author: "icellusedkars", Votes: -100, CreatedAt: at(1582459260000),
				Body: "I carry a log, yes. Is it funny to you? It is not to me."},
			{ArticleID: 1, Author: "icellusedkars", CreatedAt: at(1604437200000), Body: "I hate streaming noses"},
			{ArticleID: 1, Author: "icellusedkars", CreatedAt: at(1586642520000), Body: "I hate streaming eyes even more"},
			{ArticleID: 1, Author: "icellusedkars", CreatedAt: at(1589577540000), Body: "Lobster pot"},
			{ArticleID: 1, Author: "icellusedkars", CreatedAt: at(1586899140000), Body: "Delicious crackerbreads"},
			{ArticleID: 1, Author: "icellusedkars", CreatedAt: at(1577848080000), Body: "Superficially charming"},
			{ArticleID: 3, Author: "icellusedkars", CreatedAt: at(1592641440000), Body: "git push origin master"},
			{ArticleID: 3, Author: "icellusedkars", CreatedAt: at(1600560600000), Body: "Ambidextrous marsupial"},
			{ArticleID: 1, Author: "icellusedkars", CreatedAt: at(1583133000000), Body: "Massive intercranial brain haemorrhage"},
			{ArticleID: 1, Author: "icellusedkars", CreatedAt: at(1592216700000), Body: "Fruit pastilles"},
			{ArticleID: 5, Author: "icellusedkars", Votes: 16, CreatedAt: at(1591678800000),
				Body: "What do you see? I have no idea where this will lead us. This place I speak of, is known as the Black Lodge."},
			{ArticleID: 5, Author: "butter_bridge", Votes: 1, CreatedAt: at(1606176480000),
				Body: "I am 100% sure that we're not completely sure."},
			{ArticleID: 6, Author: "butter_bridge", Votes: 1, CreatedAt: at(1602433380000), Body: "This is a bad article name"},
			{ArticleID: 9, Author: "icellusedkars", Votes: 20, CreatedAt: at(1584205320000), Body: "The owls are not what they seem."},
			{ArticleID: 1, Author: "butter_bridge", Votes: 16, CreatedAt: at(1595294400000), Body: "This morning, I showered for nine minutes."},
		},
	}
}
