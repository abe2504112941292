package email

import (
	"context"
	"fmt"
)

func (c *Client) SendWelcomeEmail(ctx context.Context, to, name string) error {
	return c.SendEmail(ctx, to, "Welcome to Photogram!", TemplateWelcome, map[string]string{
		"UserName": name,
	})
}

func (c *Client) SendPhotoLikedEmail(ctx context.Context, to, ownerName, likerLogin, photoTitle string) error {
	return c.SendEmail(ctx, to, fmt.Sprintf("%s liked your photo", likerLogin), TemplatePhotoLiked, map[string]string{
		"OwnerName":  ownerName,
		"LikerLogin": likerLogin,
		"PhotoTitle": photoTitle,
	})
}
