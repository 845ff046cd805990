package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// SampleBooks is the catalog loaded by the seed command.
var SampleBooks = []entities.Book{
	{Title: "Dune", Year: 1965, Category: "Sci-Fi", Rating: 5, Favorite: true},
	{Title: "Emma", Year: 1815, Category: "Classic", Rating: 4},
	{Title: "Neuromancer", Year: 1984, Category: "Cyberpunk", Rating: 4},
	{Title: "The Left Hand of Darkness", Year: 1969, Category: "Sci-Fi", Rating: 5, Favorite: true},
	{Title: "Pride and Prejudice", Year: 1813, Category: "Classic", Rating: 5},
	{Title: "The Hobbit", Year: 1937, Category: "Fantasy", Rating: 4},
	{Title: "Foundation", Year: 1951, Category: "Sci-Fi", Rating: 3},
	{Title: "Middlemarch", Year: 1871, Category: "Classic", Rating: 4},
	{Title: "A Wizard of Earthsea", Year: 1968, Category: "Fantasy", Rating: 5},
	{Title: "Snow Crash", Year: 1992, Category: "Cyberpunk", Rating: 3},
}

// SeedCommand loads the sample catalog into the database.
type SeedCommand struct {
	DatabasePath string
	Force        bool
	Verbose      bool
	DryRun       bool
}

func NewSeedCommand() *SeedCommand {
	return &SeedCommand{}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalog database file")
	fs.BoolVar(&cmd.Force, "force", false, "Add the sample books even if the catalog is not empty")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every book as it is added")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be added without making changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Load %d sample books into the catalog.\n\n", len(SampleBooks))
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *SeedCommand) Run() error {
	fmt.Println("Seed Catalog")
	fmt.Println("============")

	if cmd.DryRun {
		fmt.Println("DRY RUN MODE - No changes will be made")
		fmt.Println()
	}

	db, err := database.NewDatabase(cmd.DatabasePath, database.WithLogLevel(logger.Silent))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	added, err := cmd.seed(context.Background(), books.NewRepository(db.DB))
	if err != nil {
		return err
	}

	fmt.Printf("\nAdded %d books to %s\n", added, cmd.DatabasePath)
	return nil
}

func (cmd *SeedCommand) seed(ctx context.Context, repo *books.Repository) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	if count > 0 && !cmd.Force {
		fmt.Printf("Catalog already has %d books, skipping (use -force to add anyway)\n", count)
		return 0, nil
	}

	added := 0
	for _, sample := range SampleBooks {
		book := sample
		if cmd.Verbose || cmd.DryRun {
			fmt.Printf("  + %s (%d) [%s] %d/5\n", book.Title, book.Year, book.Category, book.Rating)
		}
		if cmd.DryRun {
			continue
		}
		if err := repo.Insert(ctx, &book); err != nil {
			return added, fmt.Errorf("failed to add %q: %w", book.Title, err)
		}
		added++
	}
	return added, nil
}
