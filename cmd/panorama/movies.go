package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mvdapps/panorama/internal/httpapi"
	"github.com/mvdapps/panorama/internal/movies"
)

func newMoviesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movies",
		Short: "Query movie listings, genres and trailers",
	}
	cmd.AddCommand(
		newMoviesUpcomingCommand(),
		newMoviesNowPlayingCommand(),
		newMoviesBillboardCommand(),
		newMoviesSearchCommand(),
		newMoviesGenresCommand(),
		newMoviesDiscoverCommand(),
		newMoviesTrailersCommand(),
	)
	return cmd
}

func newMovieService(cmd *cobra.Command) (*movies.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	client := httpapi.NewClient(cfg.Movies.BaseURL)
	closeClient := func() {
		_ = client.Close()
	}
	return movies.NewService(client, cfg.Movies), closeClient, nil
}

func newMoviesUpcomingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upcoming",
		Short: "Show movies releasing soon, earliest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closeService, err := newMovieService(cmd)
			if err != nil {
				return err
			}
			defer closeService()

			results, err := service.Upcoming(cmd.Context())
			if err != nil {
				return err
			}
			return renderMovies(cmd.OutOrStdout(), results)
		},
	}
}

func newMoviesNowPlayingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "nowplaying",
		Short: "Show movies currently in theaters, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closeService, err := newMovieService(cmd)
			if err != nil {
				return err
			}
			defer closeService()

			results, err := service.NowPlaying(cmd.Context())
			if err != nil {
				return err
			}
			return renderMovies(cmd.OutOrStdout(), results)
		},
	}
}

func newMoviesBillboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "billboard",
		Short: "Show now-playing and upcoming listings together",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closeService, err := newMovieService(cmd)
			if err != nil {
				return err
			}
			defer closeService()

			billboard, err := service.Billboard(cmd.Context())
			if err != nil {
				return err
			}

			if structuredOutput() {
				return renderStructured(cmd.OutOrStdout(), billboard)
			}

			out := cmd.OutOrStdout()
			color.New(color.Bold).Fprintln(out, "Now playing")
			if err := renderMovies(out, billboard.NowPlaying); err != nil {
				return err
			}
			color.New(color.Bold).Fprintln(out, "\nUpcoming")
			return renderMovies(out, billboard.Upcoming)
		},
	}
}

func newMoviesSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search movies by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closeService, err := newMovieService(cmd)
			if err != nil {
				return err
			}
			defer closeService()

			results, err := service.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return renderMovies(cmd.OutOrStdout(), results)
		},
	}
}

func newMoviesGenresCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List movie genres",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, closeService, err := newMovieService(cmd)
			if err != nil {
				return err
			}
			defer closeService()

			genres, err := service.Genres(cmd.Context())
			if err != nil {
				return err
			}

			if structuredOutput() {
				return renderStructured(cmd.OutOrStdout(), genres)
			}
			out := cmd.OutOrStdout()
			for _, genre := range genres {
				fmt.Fprintf(out, "%5d  %s\n", genre.ID, genre.Name)
			}
			return nil
		},
	}
}

func newMoviesDiscoverCommand() *cobra.Command {
	var genreID int

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Show the most popular movies of a genre",
		RunE: func(cmd *cobra.Command, args []string) error {
			if genreID <= 0 {
				return fmt.Errorf("--genre must be a positive genre id")
			}

			service, closeService, err := newMovieService(cmd)
			if err != nil {
				return err
			}
			defer closeService()

			results, err := service.ByGenre(cmd.Context(), genreID)
			if err != nil {
				return err
			}
			return renderMovies(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().IntVar(&genreID, "genre", 0, "Genre id (see the genres command)")

	return cmd
}

func newMoviesTrailersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "trailers <movie-id>",
		Short: "Show the YouTube trailers of a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			movieID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("movie id must be a number: %w", err)
			}

			service, closeService, err := newMovieService(cmd)
			if err != nil {
				return err
			}
			defer closeService()

			trailers, err := service.Videos(cmd.Context(), movieID)
			if err != nil {
				return err
			}

			if structuredOutput() {
				return renderStructured(cmd.OutOrStdout(), trailers)
			}
			out := cmd.OutOrStdout()
			if len(trailers) == 0 {
				fmt.Fprintln(out, "no trailers found")
				return nil
			}
			for _, trailer := range trailers {
				official := ""
				if trailer.Official {
					official = " (official)"
				}
				fmt.Fprintf(out, "%4dp%s  %s\n      %s\n", trailer.Size, official, trailer.Name, trailer.WatchURL())
			}
			return nil
		},
	}
}

func renderMovies(out io.Writer, results []movies.Movie) error {
	if structuredOutput() {
		return renderStructured(out, results)
	}
	if len(results) == 0 {
		fmt.Fprintln(out, "no movies found")
		return nil
	}
	title := color.New(color.Bold)
	for _, movie := range results {
		title.Fprintf(out, "%s", movie.Title)
		if movie.ReleaseDate != "" {
			fmt.Fprintf(out, "  (%s)", movie.ReleaseDate)
		}
		fmt.Fprintf(out, "  %.1f/10\n", movie.VoteAverage)
		if overview := movie.ShortOverview(); overview != "" {
			fmt.Fprintf(out, "    %s\n", overview)
		}
	}
	return nil
}
