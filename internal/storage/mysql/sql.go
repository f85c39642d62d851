package mysql

const upsertYachtSQL = `
INSERT INTO yachts
  (id, slug, model, length_m, cabins, berths, year_built,
   low_season_price, medium_season_price, high_season_price,
   name_i18n, description_i18n,
   description_en, description_es, description_de, description, images)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  slug                = VALUES(slug),
  model               = VALUES(model),
  length_m            = VALUES(length_m),
  cabins              = VALUES(cabins),
  berths              = VALUES(berths),
  year_built          = VALUES(year_built),
  low_season_price    = VALUES(low_season_price),
  medium_season_price = VALUES(medium_season_price),
  high_season_price   = VALUES(high_season_price),
  name_i18n           = VALUES(name_i18n),
  description_i18n    = VALUES(description_i18n),
  description_en      = VALUES(description_en),
  description_es      = VALUES(description_es),
  description_de      = VALUES(description_de),
  description         = VALUES(description),
  images              = VALUES(images),
  updated_at          = CURRENT_TIMESTAMP
`

const upsertDestinationSQL = `
INSERT INTO destinations
  (id, slug, region, name_i18n, description_i18n,
   description_en, description_es, description_de, description, images)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  slug             = VALUES(slug),
  region           = VALUES(region),
  name_i18n        = VALUES(name_i18n),
  description_i18n = VALUES(description_i18n),
  description_en   = VALUES(description_en),
  description_es   = VALUES(description_es),
  description_de   = VALUES(description_de),
  description      = VALUES(description),
  images           = VALUES(images),
  updated_at       = CURRENT_TIMESTAMP
`

const upsertCrewSQL = `
INSERT INTO crew
  (id, name, role_i18n, bio_i18n, photo_url, position)
VALUES
  (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name      = VALUES(name),
  role_i18n = VALUES(role_i18n),
  bio_i18n  = VALUES(bio_i18n),
  photo_url = VALUES(photo_url),
  position  = VALUES(position)
`

// COALESCE keeps existing values when a re-imported review is sparse.
const upsertReviewSQL = "INSERT INTO reviews\n" +
	"  (id, yacht_id, author, rating, locale, title, `text`)\n" +
	"VALUES (?, ?, ?, ?, ?, ?, ?)\n" +
	"ON DUPLICATE KEY UPDATE\n" +
	"  author = COALESCE(VALUES(author), reviews.author),\n" +
	"  rating = COALESCE(VALUES(rating), reviews.rating),\n" +
	"  locale = COALESCE(VALUES(locale), reviews.locale),\n" +
	"  title  = COALESCE(VALUES(title), reviews.title),\n" +
	"  `text` = COALESCE(VALUES(`text`), reviews.`text`)\n"

const upsertSiteStatSQL = `
INSERT INTO site_stats (stat_key, label_i18n, value, position)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  label_i18n = VALUES(label_i18n),
  value      = VALUES(value),
  position   = VALUES(position)
`

const insertInquirySQL = `
INSERT INTO inquiries (yacht_id, name, email, phone, start_date, end_date, message)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

const insertGalleryImageSQL = `
INSERT INTO gallery_images (url, object_key, alt_i18n, position)
VALUES (?, ?, ?, ?)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const yachtColumns = `
  id, slug, model, length_m, cabins, berths, year_built,
  low_season_price, medium_season_price, high_season_price,
  name_i18n, description_i18n,
  description_en, description_es, description_de, description, images
`

const getYachtSQL = `SELECT` + yachtColumns + `FROM yachts WHERE id = ?`

const listYachtsSQL = `SELECT` + yachtColumns + `FROM yachts ORDER BY id`

const listRateCardsSQL = `
SELECT id, low_season_price, medium_season_price, high_season_price
FROM yachts
ORDER BY id
`

const destinationColumns = `
  id, slug, region, name_i18n, description_i18n,
  description_en, description_es, description_de, description, images
`

const getDestinationSQL = `SELECT` + destinationColumns + `FROM destinations WHERE id = ?`

const listDestinationsSQL = `SELECT` + destinationColumns + `FROM destinations ORDER BY id`

const listReviewsSQL = "SELECT id, yacht_id, author, rating, locale, title, `text`\n" +
	"FROM reviews\n" +
	"ORDER BY created_at DESC, id DESC\n" +
	"LIMIT ?"

const listCrewSQL = `
SELECT id, name, role_i18n, bio_i18n, photo_url, position
FROM crew
ORDER BY position, id
`

const listSiteStatsSQL = `
SELECT stat_key, label_i18n, value, position
FROM site_stats
ORDER BY position, stat_key
`

const listInquiriesSQL = `
SELECT id, yacht_id, name, email, phone, start_date, end_date, message, created_at
FROM inquiries
ORDER BY created_at DESC, id DESC
`

const listGalleryImagesSQL = `
SELECT id, url, object_key, alt_i18n, position
FROM gallery_images
ORDER BY position, id
`

const getGalleryImageSQL = `
SELECT id, url, object_key, alt_i18n, position
FROM gallery_images
WHERE id = ?
`

const deleteGalleryImageSQL = `DELETE FROM gallery_images WHERE id = ?`
