// Package cli implements the interactive starly shell: a line-oriented REPL
// over a session.Binder, with prompts for credentials and comments.
//
// Commands
//
//	register | login | logout
//	search <title>            search the catalog for movies
//	show <imdb id | #n>       open a film (n indexes the last search)
//	rate <0-10>               rate the open film
//	comment                   edit the open film's comment (saved after a pause)
//	towatch                   toggle the open film on/off the watchlist
//	delete                    remove the open film from the journal
//	back                      close the open film
//	watched [-sort f] [-asc] [query]
//	watchlist | stats
//	remove <entry id>         remove a journal entry by id
//	help | exit | quit
package cli
