package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"os"
	"strconv"

	"post-pilot/helpers"
	"post-pilot/models"

	"github.com/dghubble/oauth1"
	"github.com/michimani/gotwi"
	"github.com/michimani/gotwi/tweet/managetweet"
	"github.com/michimani/gotwi/tweet/managetweet/types"
)

type mediaUpload struct {
	MediaId int `json:"media_id"`
}

// TwitterPublisher posts through the v2 API with OAuth1 user context.
// Consumer key/secret come from TWITTER_KEY / TWITTER_SECRET, which gotwi
// reads as GOTWI_API_KEY / GOTWI_API_KEY_SECRET equivalents.
type TwitterPublisher struct {
	oauthToken       string
	oauthTokenSecret string
}

func NewTwitterPublisher(oauthToken, oauthTokenSecret string) *TwitterPublisher {
	return &TwitterPublisher{oauthToken: oauthToken, oauthTokenSecret: oauthTokenSecret}
}

func (p *TwitterPublisher) Publish(ctx context.Context, post models.Post) (string, error) {
	in := &gotwi.NewClientInput{
		AuthenticationMethod: gotwi.AuthenMethodOAuth1UserContext,
		OAuthToken:           p.oauthToken,
		OAuthTokenSecret:     p.oauthTokenSecret,
	}

	client, err := gotwi.NewClient(in)
	if err != nil {
		return "", err
	}

	var tweet types.CreateInput
	tweet.Text = gotwi.String(post.Content)

	if post.ImageUrl != "" {
		mediaId, err := p.uploadMedia(post.ImageUrl)
		if err != nil {
			return "", err
		}
		tweet.Media = &types.CreateInputMedia{
			MediaIDs: []string{mediaId},
		}
	}

	res, err := managetweet.Create(ctx, client, &tweet)
	if err != nil {
		return "", err
	}

	return gotwi.StringValue(res.Data.ID), nil
}

// uploadMedia goes through the v1.1 media endpoint, which needs an
// oauth1-signed multipart upload of a local file.
func (p *TwitterPublisher) uploadMedia(imageUrl string) (string, error) {
	config := oauth1.NewConfig(os.Getenv("TWITTER_KEY"), os.Getenv("TWITTER_SECRET"))

	token := oauth1.Token{
		Token:       p.oauthToken,
		TokenSecret: p.oauthTokenSecret,
	}

	httpClient := config.Client(oauth1.NoContext, &token)
	b := &bytes.Buffer{}
	form := multipart.NewWriter(b)

	fileLocation, err := helpers.DownloadImage(imageUrl)
	if err != nil {
		helpers.Logging("error", err.Error())
		return "", err
	}

	file, err := os.Open(fileLocation)
	if err != nil {
		helpers.Logging("error", err.Error())
		return "", err
	}
	defer file.Close()

	fw, err := form.CreateFormFile("media", fileLocation)
	if err != nil {
		helpers.Logging("error", err.Error())
		return "", err
	}

	_, err = io.Copy(fw, file)
	if err != nil {
		helpers.Logging("error", err.Error())
		return "", err
	}

	form.Close()

	uploadResp, err := httpClient.Post("https://upload.twitter.com/1.1/media/upload.json?media_category=tweet_image", form.FormDataContentType(), bytes.NewReader(b.Bytes()))
	if err != nil {
		helpers.Logging("error", err.Error())
		return "", err
	}
	defer uploadResp.Body.Close()

	body, err := io.ReadAll(uploadResp.Body)
	if err != nil {
		helpers.Logging("error", err.Error())
		return "", err
	}

	m := &mediaUpload{}
	if err := json.Unmarshal(body, m); err != nil {
		helpers.Logging("error", err.Error())
		return "", err
	}

	return strconv.Itoa(m.MediaId), nil
}
